// Package harness runs parser conformance scenarios.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	cases:
//	  - rule: type_def
//	    input: "type Point { x: f64, y: f64 }"
//	    expect:
//	      name: Point
//	      fields:
//	        - { name: x, type: f64 }
//	        - { name: y, type: f64 }
//	      remaining: ""
//	  - rule: ident
//	    input: "9lives"
//	    expect: { fail: true }
//
// # Rules
//
//   - type_def: one `type Name { ... }` declaration
//   - ident: a single identifier with surrounding same-line whitespace
//   - field: `name` or `name: type`
//   - field_list: the comma-separated body of a declaration (never fails)
//
// A failing case must also leave its input unconsumed.
//
// # Catalog Check
//
// Every matched type_def is recorded in a fresh in-memory catalog as a
// single run and read back, so a scenario also checks that definitions
// survive storage unchanged.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/point.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, err := range result.Errors {
//	        log.Println(err)
//	    }
//	}
package harness
