package common

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/btcsuite/btcutil/base58"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/errors"
)

// logFormatErrorKey holds the failure when a record can not be encoded.
const logFormatErrorKey = "LOG_FORMAT_ERROR"

// logValue makes the context values of a log record readable in json; byte
// slices, usually hashes, are printed in base58.
func logValue(value interface{}) interface{} {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return "nil"
	}

	switch v := value.(type) {
	case *errors.Error, json.Marshaler, Serializable:
		return v
	case time.Time:
		return FormatISO8601(v)
	case []byte:
		return base58.Encode(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	return value
}

func logRecordFields(r *logging.Record) map[string]interface{} {
	fields := map[string]interface{}{
		r.KeyNames.Time: FormatISO8601(r.Time),
		r.KeyNames.Lvl:  r.Lvl.String(),
		r.KeyNames.Msg:  r.Msg,
	}

	for i := 0; i+1 < len(r.Ctx); i += 2 {
		key, ok := r.Ctx[i].(string)
		if !ok {
			fields[logFormatErrorKey] = fmt.Sprintf("%+v is not a string key", r.Ctx[i])
			continue
		}
		fields[key] = logValue(r.Ctx[i+1])
	}

	return fields
}

// JsonFormatEx is the log15 json format which also understands
// `*errors.Error` and `Serializable` values.
func JsonFormatEx(pretty, lineSeparated bool) logging.Format {
	return logging.FormatFunc(func(r *logging.Record) []byte {
		fields := logRecordFields(r)

		var b []byte
		var err error
		if pretty {
			b, err = json.MarshalIndent(fields, "", "    ")
		} else {
			b, err = json.Marshal(fields)
		}
		if err != nil {
			b, _ = json.Marshal(map[string]string{logFormatErrorKey: err.Error()})
		}

		if lineSeparated {
			b = append(b, '\n')
		}
		return b
	})
}
