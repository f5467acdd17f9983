package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// parsePlain extracts node centres (in inches) and the graph height from
// Graphviz "plain" output:
//
//	graph scale width height
//	node name x y width height label style shape color fillcolor
//	edge tail head n x1 y1 ... xn yn [label xl yl] style color
//	stop
func parsePlain(data []byte) (map[string]Position, float64, error) {
	centres := make(map[string]Position)
	var height float64
	sawGraph := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		fields := splitPlain(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "graph":
			if len(fields) < 4 {
				return nil, 0, fmt.Errorf("line %d: short graph record", line)
			}
			h, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: graph height: %w", line, err)
			}
			height = h
			sawGraph = true
		case "node":
			if len(fields) < 4 {
				return nil, 0, fmt.Errorf("line %d: short node record", line)
			}
			x, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: node x: %w", line, err)
			}
			y, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: node y: %w", line, err)
			}
			centres[fields[1]] = Position{X: x, Y: y}
		case "stop":
			if !sawGraph {
				return nil, 0, fmt.Errorf("missing graph record")
			}
			return centres, height, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}
	if !sawGraph {
		return nil, 0, fmt.Errorf("missing graph record")
	}
	return centres, height, nil
}

// splitPlain splits a plain-format line on whitespace, keeping double-quoted
// fields together and unescaping \" inside them.
func splitPlain(line string) []string {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (c == ' ' || c == '\t'):
			if started {
				fields = append(fields, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteByte(c)
			started = true
		}
	}
	if started {
		fields = append(fields, cur.String())
	}
	return fields
}
