// Package factory instantiates pluggable modules from configuration. A module
// is described by a type string and a raw settings map; the registered
// factory decodes the settings into its own struct.
//
//	reg := factory.NewRegistry[metrics.Sink]()
//	_ = reg.Register("influx", func(conf map[string]any) (metrics.Sink, error) {
//	    var c InfluxConfig
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewInfluxSink(c), nil
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "influx", Conf: raw})
package factory
