package common

import (
	"encoding/json"
	"os"

	uuid "github.com/satori/go.uuid"
)

type Serializable interface {
	Serialize() ([]byte, error)
}

func GenerateUUID() string {
	return uuid.Must(uuid.NewV4(), nil).String()
}

// GetENVValue is `defaultValue` only when `key` is not set at all; an empty
// variable stays empty.
func GetENVValue(key, defaultValue string) string {
	if v, found := os.LookupEnv(key); found {
		return v
	}
	return defaultValue
}

func InStringArray(a []string, s string) (int, bool) {
	for i, v := range a {
		if v == s {
			return i, true
		}
	}
	return -1, false
}

// MustUnmarshalJSON is only for the records the node wrote by itself.
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, err := json.Marshal(o)
	if err != nil {
		panic(err)
	}
	return b
}
