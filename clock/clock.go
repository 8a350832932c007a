package clock

import (
	"github.com/fundwit/go-commons/types"
)

// NowFunc is the only source of wall-clock time for deadline comparisons,
// replaceable in tests with synthetic time.
var NowFunc = types.CurrentTimestamp

func Now() types.Timestamp {
	return NowFunc()
}
