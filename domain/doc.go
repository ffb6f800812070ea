// Package domain provides loading and parsing of domain.yaml problem
// definitions: the map facts, inference rules, action schemas, goal, and
// search bounds for one planning problem.
//
// A domain file uses the conventional expression syntax for terms:
//
//	name: romania
//	facts:
//	  - Connected(Bucharest, Pitesti)
//	  - Connected(Pitesti, Rimnicu)
//	  - At(Sibiu)
//	rules:
//	  - Connected(x, y) ==> Connected(y, x)
//	actions:
//	  - name: Drive
//	    params: [x, y]
//	    precond: [At(x), Connected(x, y)]
//	    add: [At(y)]
//	    del: [At(x)]
//	goal:
//	  - At(Bucharest)
//	bounds:
//	  max_depth: 10
//
// Load parses and validates the file; Config.Problem compiles it into a
// planning.Problem whose initial state is the forward-chaining closure of
// the facts under the rules, and whose goal asks the rules-seeded KB.
package domain
