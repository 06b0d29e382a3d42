package project

// Param is one keyword argument of setup().
type Param struct {
	Key   string
	Value any // string, bool, []string, map[string][]string or nil (None)
}

// Params is the ordered argument list of setup().
type Params []Param

// Get returns the value for key.
func (p Params) Get(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Keys returns the parameter names in order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}
