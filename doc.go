// Package morph provides a record transformation pipeline engine.
//
// A pipeline is defined declaratively (for example in YAML) as an ordered
// chain of commands; each command transforms records in place and forwards
// them to the next stage. Lifecycle notifications (startSession, commit,
// rollback, shutdown) traverse the same chain so that commands holding
// session-scoped state, such as sanitizeUniqueKey's record counter, can reset
// at session boundaries.
//
// End-users typically interact with the engine via the high-level Service
// facade exposed by the root package:
//
//	srv := morph.New()
//	pipeline, _ := srv.Load(ctx, "pipeline.yaml")
//	rt, _ := srv.Compile(ctx, pipeline, sink)
//	_ = rt.StartSession(ctx)
//	_, _ = rt.Process(ctx, record)
//
// For more details see the individual sub-packages.
package morph
