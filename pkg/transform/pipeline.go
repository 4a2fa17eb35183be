package transform

// Pipeline is an ordered sequence of transforms.
type Pipeline []Func

// New builds a pipeline from transform identifiers, keeping their order.
// Identifiers are resolved like ParseID, so flag letters and long names work
// too. It fails only for identifiers that name no registered transform.
func New(ids ...ID) (Pipeline, error) {
	p := make(Pipeline, 0, len(ids))
	for _, id := range ids {
		fn, ok := Lookup(id)
		if !ok {
			resolved, err := ParseID(string(id))
			if err != nil {
				return nil, err
			}
			fn, _ = Lookup(resolved)
		}
		p = append(p, fn)
	}
	return p, nil
}

// Apply feeds value through each transform in order and returns the result.
// A nil or empty pipeline returns value unchanged.
func (p Pipeline) Apply(value string) string {
	for _, fn := range p {
		value = fn(value)
	}
	return value
}

// Apply runs value through the transforms named by ids, in the given order.
// Identifiers that are not registered contribute no step; validate
// user input with ParseIDs or New before calling Apply.
func Apply(value string, ids []ID) string {
	for _, id := range ids {
		if fn, ok := Lookup(id); ok {
			value = fn(value)
		}
	}
	return value
}
