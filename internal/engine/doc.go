// Package engine drives one canvas session: it owns the screen store, the
// camera, the viewport, and the policy that maps user actions and backend
// messages onto them.
//
// There is no global state; an Engine is constructed at session start with
// its collaborators and torn down with the session. Wiring a session looks
// like:
//
//	conn := transport.New(transport.Config{URL: cfg.Canvas.Endpoint}, log)
//	eng := engine.New(engine.Config{Publisher: conn}, log)
//	defer conn.Close()
//	unsub := conn.Subscribe(eng.HandleMessage)
//	defer unsub()
//	conn.Connect()
//
// The flow for a generation request: Place computes placeholder positions,
// the store takes optimistic loading screens, one generate_screens
// envelope goes out, and arriving screen_update messages are reconciled by
// id: patching known screens, synthesizing unknown ones so no update is
// ever discarded. After inserts the camera auto-frames the new screens;
// after any other change the engine repairs a camera that shows empty
// canvas, unless a pan gesture is active.
package engine
