// Package factory is a small generic registry that instantiates backends
// from configuration. A backend is selected by a type string and receives
// its raw settings map, which it decodes with Decode.
//
// Example:
//
//	reg := factory.NewRegistry[partstore.Store]()
//	_ = reg.Register("csv", func(conf map[string]any) (partstore.Store, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return store.NewCSVStore(c.Path), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": "data.csv"}})
package factory
