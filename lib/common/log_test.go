package common

import (
	"encoding/json"
	"testing"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/errors"
)

func TestJsonFormatEx(t *testing.T) {
	created := time.Date(2018, 11, 1, 10, 0, 0, 0, time.UTC)

	r := &logging.Record{
		Time: created,
		Lvl:  logging.LvlInfo,
		Msg:  "showme",
		Ctx: []interface{}{
			"created", created,
			"raw", []byte("findme"),
			"error", errors.VotingClosed,
			"height", 3,
		},
		KeyNames: logging.RecordKeyNames{Time: "t", Msg: "msg", Lvl: "lvl"},
	}

	b := JsonFormatEx(false, true).Format(r)
	require.Equal(t, byte('\n'), b[len(b)-1])

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))

	require.Equal(t, "showme", decoded["msg"])
	require.Equal(t, "info", decoded["lvl"])
	require.Equal(t, FormatISO8601(created), decoded["created"])
	require.Equal(t, "sztdNhKA", decoded["raw"])
	require.Equal(t, float64(3), decoded["height"])
	require.Equal(t, float64(errors.VotingClosed.Code), decoded["error"].(map[string]interface{})["code"])
}

func TestUnixToISO8601(t *testing.T) {
	require.Equal(t, "1970-01-01T00:16:40.000000000Z", UnixToISO8601(1000))

	parsed, err := ParseISO8601(UnixToISO8601(1000))
	require.NoError(t, err)
	require.Equal(t, int64(1000), parsed.Unix())
}
