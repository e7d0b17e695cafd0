// Package manifest loads declarative command and settings declarations.
//
// A manifest is a YAML, TOML or JSON document:
//
//	commands:
//	  - name: serve
//	    arguments:
//	      - name: port
//	        validator: required(integer)
//	        default: 8080
//	      - name: hosts
//	        validator: arrayorsingle(string)
//	        kind: array
//	settings:
//	  name: required(string)
//	  server:
//	    port: integer
//
// Validator expressions use the syntax of validation.Parse. Loading a manifest
// produces an arguments.Registry and a settings.Meta.
package manifest
