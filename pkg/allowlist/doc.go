// Package allowlist filters structured payloads down to pre-declared field
// paths before they are sent to an external generative-AI service.
//
// Payloads are modelled as an immutable tagged Value (null, bool, number,
// string, array, object with ordered members). Build one with ParseJSON
// (backed by github.com/valyala/fastjson), FromAny, or the constructors.
//
// Every Category has a Schema: a flat list of dotted paths where a segment
// ending in "[]" matches any array index, e.g. "snippets[].title". The
// built-in categories are declared in an embedded YAML document and more can
// be loaded with LoadFile and registered on a Registry.
//
// Filtering rules:
//
//   - an exactly allowed path is copied whole, without further filtering;
//   - other primitives are dropped;
//   - an array is kept only if some path starts with "path[]". Primitive
//     items survive only when "path[]" itself is allowed, object items are
//     filtered member by member under "path[].key";
//   - objects are filtered member by member under "path.key";
//   - empty containers are omitted.
//
// Filtering is idempotent.
//
// # Validation
//
// Validate is the trust boundary. It filters, then scans every retained
// leaf with the PII detector and fails closed:
//
//	res, err := allowlist.Validate(payload, allowlist.Campaign)
//	if err != nil {
//	    return err // unknown category
//	}
//	if !res.Safe {
//	    return fmt.Errorf("payload rejected: %s", res.Reason)
//	}
//	send(res.Payload)
//
// A rejected payload is never returned, redacted or otherwise.
package allowlist
