package common

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v2"
)

// Encode writes v to w in one of the output formats of the commands.
type Encode func(v interface{}, w io.Writer) error

func encodeJSON(indent string) Encode {
	return func(v interface{}, w io.Writer) error {
		e := json.NewEncoder(w)
		e.SetIndent("", indent)
		return e.Encode(v)
	}
}

func encodeYAML(v interface{}, w io.Writer) error {
	e := yaml.NewEncoder(w)
	if err := e.Encode(v); err != nil {
		return err
	}
	return e.Close()
}

var DefaultEncodes = map[string]Encode{
	"json":       encodeJSON(""),
	"prettyjson": encodeJSON("  "),
	"yaml":       encodeYAML,
}
