package cmd

import (
	"fmt"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// loadConfigFile sets the flags from the yaml file. The keys are the flag
// names; a flag given in the command line keeps its value.
//
//	network-id: ballot-test-network
//	block-time: 5s
//	validators:
//	  - GDPQ2LBYP3RL3O675H2N5IEYM6PRJNUA5QFMKXIHGTKEB5KS5T3KHFA2
func loadConfigFile(flags *pflag.FlagSet, path string) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	return loadConfig(flags, b)
}

func loadConfig(flags *pflag.FlagSet, b []byte) error {
	values := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &values); err != nil {
		return errors.Wrap(err, "invalid config file")
	}

	var keys []string
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f := flags.Lookup(k)
		if f == nil {
			return errors.Errorf("unknown key in config file: %q", k)
		}
		if f.Changed {
			continue
		}

		if err := flags.Set(k, configValue(values[k])); err != nil {
			return errors.Wrapf(err, "invalid value of %q in config file", k)
		}
	}

	return nil
}

func configValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []interface{}:
		var s []string
		for _, i := range t {
			s = append(s, fmt.Sprint(i))
		}
		return strings.Join(s, " ")
	default:
		return fmt.Sprint(t)
	}
}
