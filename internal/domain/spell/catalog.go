// Package spell holds the summoner spell catalog: the fixed set of spell
// names a report may mention and the cooldown each one starts.
package spell

import (
	"fmt"
	"strings"
	"time"
)

// Supported catalog locales.
const (
	LocaleKorean  = "ko"
	LocaleEnglish = "en"
)

// Definition is one catalog entry.
type Definition struct {
	Name     string
	Cooldown time.Duration
}

// Catalog is an immutable, ordered set of spell definitions. The order is
// the tie-break order used when a report mentions more than one spell.
type Catalog struct {
	locale     string
	defs       []Definition
	byName     map[string]time.Duration
	registered string
	ready      string
}

// NewCatalog validates defs and builds a Catalog. registered and ready are
// fmt templates taking the target name and the spell name.
func NewCatalog(locale, registered, ready string, defs ...Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no spells", ErrInvalidCatalog)
	}
	c := &Catalog{
		locale:     locale,
		defs:       make([]Definition, 0, len(defs)),
		byName:     make(map[string]time.Duration, len(defs)),
		registered: registered,
		ready:      ready,
	}
	for _, d := range defs {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("%w: empty spell name", ErrInvalidCatalog)
		}
		if d.Cooldown <= 0 {
			return nil, fmt.Errorf("%w: spell %q has non-positive cooldown", ErrInvalidCatalog, d.Name)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate spell %q", ErrInvalidCatalog, d.Name)
		}
		c.byName[d.Name] = d.Cooldown
		c.defs = append(c.defs, d)
	}
	return c, nil
}

func mustCatalog(locale, registered, ready string, defs ...Definition) *Catalog {
	c, err := NewCatalog(locale, registered, ready, defs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Korean is the default catalog. Names are the tokens produced by the
// Korean speech-to-text client.
var Korean = mustCatalog(LocaleKorean, "%s %s 쿨타임 등록했습니다!", "%s %s 돌았습니다!",
	Definition{Name: "점멸", Cooldown: 300 * time.Second},
	Definition{Name: "순간이동", Cooldown: 360 * time.Second},
	Definition{Name: "점화", Cooldown: 180 * time.Second},
	Definition{Name: "회복", Cooldown: 240 * time.Second},
	Definition{Name: "탈진", Cooldown: 210 * time.Second},
	Definition{Name: "정화", Cooldown: 210 * time.Second},
	Definition{Name: "방어막", Cooldown: 180 * time.Second},
	Definition{Name: "유체화", Cooldown: 210 * time.Second},
	Definition{Name: "강타", Cooldown: 90 * time.Second},
)

// English mirrors Korean with the client's English spell names.
var English = mustCatalog(LocaleEnglish, "%s %s cooldown registered!", "%s %s is back up!",
	Definition{Name: "Flash", Cooldown: 300 * time.Second},
	Definition{Name: "Teleport", Cooldown: 360 * time.Second},
	Definition{Name: "Ignite", Cooldown: 180 * time.Second},
	Definition{Name: "Heal", Cooldown: 240 * time.Second},
	Definition{Name: "Exhaust", Cooldown: 210 * time.Second},
	Definition{Name: "Cleanse", Cooldown: 210 * time.Second},
	Definition{Name: "Barrier", Cooldown: 180 * time.Second},
	Definition{Name: "Ghost", Cooldown: 210 * time.Second},
	Definition{Name: "Smite", Cooldown: 90 * time.Second},
)

// ForLocale returns the built-in catalog for locale.
func ForLocale(locale string) (*Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", LocaleKorean:
		return Korean, nil
	case LocaleEnglish:
		return English, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
}

// Locale returns the catalog locale.
func (c *Catalog) Locale() string { return c.locale }

// Len returns the number of spells.
func (c *Catalog) Len() int { return len(c.defs) }

// Names returns the spell names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.defs))
	for i, d := range c.defs {
		names[i] = d.Name
	}
	return names
}

// Definitions returns a copy of the catalog entries in order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Cooldown returns the cooldown for name.
func (c *Catalog) Cooldown(name string) (time.Duration, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// RegisteredMessage confirms that a cooldown was started.
func (c *Catalog) RegisteredMessage(target, spellName string) string {
	return fmt.Sprintf(c.registered, target, spellName)
}

// ReadyMessage announces that a cooldown has run out.
func (c *Catalog) ReadyMessage(target, spellName string) string {
	return fmt.Sprintf(c.ready, target, spellName)
}
