// Package harness runs widget conformance scenarios.
//
// A scenario names a CUE fixture, drives the built widget through a list of
// steps and checks the resulting state. Every step appends one event to the
// trace, which is serialized as canonical JSON for golden comparison.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	fixture: listbox.fruit
//	steps:
//	  - focus: true
//	  - key: ArrowDown
//	    mods: [shift]
//	    expect:
//	      active_index: 2
//	  - click: 3
//	  - call: select_all
//	  - wait: 600ms
//	  - remove: 1
//	expect:
//	  selected_indices: [0, 2]
//	  trace_count: 6
//
// # Steps
//
//   - focus: Moves host focus into the widget container
//   - key: Dispatches a keydown with optional modifiers
//   - click: Dispatches a primary click on the item at an index
//   - call: Invokes a controller operation directly (see Calls)
//   - wait: Advances the manual clock, expiring the typeahead buffer
//   - remove: Removes a listbox option, firing focusout when it held focus
//
// # Deterministic Testing
//
// Element ids come from ids.Sequence, time from testutil.ManualClock and
// deferred focus work from a focus.Queue drained after every step, so the
// same scenario always yields byte-identical traces.
//
// # Usage
//
//	set, errs := fixture.Load("testdata/fixtures", fixture.LoadModeCollectAll)
//	scenario, err := harness.LoadScenario("testdata/scenarios/fruit.yaml")
//	result, err := harness.New(set).Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
