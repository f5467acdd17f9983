// Package driver runs the interactive filter, layout and scene loop.
//
// An [AppState] is built once from the loaded graph: it fixes the cluster
// colours and the step range. A [Driver] then owns the current step and turns
// every step change into a [Frame]:
//
//	state := driver.NewAppState(g, palette.Tab20)
//	d := driver.New(state, driver.Options{Layout: sel})
//	frame, err := d.SetStep(ctx, 3)
//
// Steps outside the range are clamped. Renders are serialised, so one step
// change is fully processed before the next starts, whether it comes from the
// terminal UI or from concurrent HTTP requests.
//
// # Degraded Layout
//
// When the hierarchical layout is unavailable the frame is still produced
// with the spring layout; the failure is logged at warn level and carried in
// [Frame.Warning]. It is never returned as an error.
package driver
