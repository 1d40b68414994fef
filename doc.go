// Package aspen is the simulation core of a retained-mode 2D scene engine.
//
// Aspen owns the part of an engine that must be deterministic and
// platform-free: a fixed-timestep game loop, a hierarchical scene graph
// with inherited transforms and alpha, declarative per-node constraints,
// warp-grid mesh deformation, and per-frame command generation. Each frame
// it emits two ordered streams of plain data — [DrawCommand] and
// [AudioCommand] — for an external renderer and audio backend to consume.
// The core imports no graphics or audio packages; adapters for Ebitengine
// and beep live in the render and playback subpackages.
//
// # Quick start
//
// Build a scene, present it on a loop, and drive the loop from your host's
// per-frame callback:
//
//	scene := aspen.NewScene()
//	hero := aspen.NewSprite("hero", 1, aspen.Size{Width: 32, Height: 32})
//	scene.Root().AddChild(hero)
//
//	loop := aspen.NewGameLoop()
//	loop.Present(scene)
//
//	// per host frame:
//	loop.Tick(realDelta, input)
//	cmds := scene.GenerateDrawCommands()
//	audio := scene.Audio().ConsumeCommands()
//
// The same input and delta sequence always produces the same command
// streams: simulation advances only in fixed steps, and the accumulator
// carries fractional frame time across ticks. [GameLoop.Step] runs exactly
// one fixed update for replay or lockstep drivers.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root];
// children inherit their parent's position, rotation, scale, and alpha.
// Draw order is ZPosition, with child-insertion order breaking ties.
//
// Constraints ([Constraint]) clamp or steer a node's local transform after
// user logic runs each step. Warp grids ([WarpGrid]) deform a sprite's quad
// through a mesh of displaced control vertices, with wave, bulge, and twist
// presets and linear blending between grids.
package aspen
