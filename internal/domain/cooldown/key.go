package cooldown

import (
	"strconv"
	"strings"
	"time"
)

// Key addresses one cooldown: who reported it, against which enemy, for
// which spell. It is the only index into the Store.
type Key struct {
	SummonerID int64
	Target     string
	Spell      string
}

// String serializes the key as "<summonerID>:<target>:<spell>".
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(k.SummonerID, 10))
	b.WriteByte(':')
	b.WriteString(k.Target)
	b.WriteByte(':')
	b.WriteString(k.Spell)
	return b.String()
}

// Value is the human-readable payload stored under the key.
func (k Key) Value() string {
	return k.Target + ":" + k.Spell
}

// Validate reports whether every part of the key is present.
func (k Key) Validate() error {
	if k.SummonerID <= 0 || strings.TrimSpace(k.Target) == "" || strings.TrimSpace(k.Spell) == "" {
		return invalid(ErrInvalidKey)
	}
	return nil
}

// Entry is what a registration writes: the key, its payload and the time
// the store will drop it.
type Entry struct {
	Key       Key
	Value     string
	TTL       time.Duration
	ExpiresAt time.Time
}
