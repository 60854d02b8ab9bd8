package candles

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const voucherAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FormatVoucher builds a display code PREFIX-yymmdd-score-XXXXXX. The
// suffix is six random base-36 characters. Codes are cosmetic and carry no
// security.
func FormatVoucher(prefix string, score int, at time.Time, rng *rand.Rand) string {
	var sb strings.Builder
	for range 6 {
		sb.WriteByte(voucherAlphabet[rng.Intn(len(voucherAlphabet))])
	}
	return fmt.Sprintf("%s-%s-%d-%s", prefix, at.UTC().Format("060102"), score, sb.String())
}
