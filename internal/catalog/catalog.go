package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// slotNamespace keys the UUIDv5 slot identifiers. Changing it re-keys every stored reservation.
var slotNamespace = uuid.MustParse("6f1c3e0a-5b7d-4c1e-9a2f-3d8b7e6c5a41")

type fileCatalog struct {
	Tournaments []struct {
		Name string `yaml:"name"`
		Days []struct {
			Day      string   `yaml:"day"`
			TeeTimes []string `yaml:"tee_times"`
		} `yaml:"days"`
	} `yaml:"tournaments"`
}

type Catalog struct {
	tournaments []teetime.Tournament
}

// SlotID derives the identifier of a tee time. The same tournament, day and time always map to the same ID.
func SlotID(tournament, day, teeTime string) uuid.UUID {
	key := tournament + "\x00" + day + "\x00" + teetime.NormalizeTeeTime(teeTime)
	return uuid.NewSHA1(slotNamespace, []byte(key))
}

// Generate lays out the tee times of one tournament day, numbering them from startNumber.
func Generate(startNumber int, tournament, day string, times []string) []teetime.Slot {
	slots := make([]teetime.Slot, 0, len(times))
	for i, t := range times {
		t = strings.TrimSpace(t)
		slots = append(slots, teetime.Slot{
			ID:         SlotID(tournament, day, t),
			Number:     startNumber + i,
			Tournament: tournament,
			Day:        day,
			TeeTime:    t,
		})
	}
	return slots
}

func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{}
	next := 1
	seenSlots := make(map[uuid.UUID]bool)
	seenTournaments := make(map[string]bool)

	for _, ft := range fc.Tournaments {
		name := strings.TrimSpace(ft.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: tournament without a name")
		}
		if seenTournaments[strings.ToLower(name)] {
			return nil, fmt.Errorf("catalog: tournament %q listed twice", name)
		}
		seenTournaments[strings.ToLower(name)] = true

		t := teetime.Tournament{Name: name}
		seenDays := make(map[string]bool)
		for _, fd := range ft.Days {
			day := strings.TrimSpace(fd.Day)
			if day == "" {
				return nil, fmt.Errorf("catalog: %s has a day without a name", name)
			}
			if seenDays[day] {
				return nil, fmt.Errorf("catalog: %s lists day %q twice", name, day)
			}
			seenDays[day] = true
			if len(fd.TeeTimes) == 0 {
				return nil, fmt.Errorf("catalog: %s %s has no tee times", name, day)
			}

			slots := Generate(next, name, day, fd.TeeTimes)
			for _, s := range slots {
				if s.TeeTime == "" {
					return nil, fmt.Errorf("catalog: %s %s has an empty tee time", name, day)
				}
				if seenSlots[s.ID] {
					return nil, fmt.Errorf("catalog: %s %s lists %q twice", name, day, s.TeeTime)
				}
				seenSlots[s.ID] = true
			}
			next += len(slots)

			t.Days = append(t.Days, teetime.Day{Name: day, Slots: slots})
		}
		c.tournaments = append(c.tournaments, t)
	}

	if len(c.tournaments) == 0 {
		return nil, fmt.Errorf("catalog: no tournaments")
	}
	return c, nil
}

// Tournaments returns a copy of the catalog, safe for callers to fill with players.
func (c *Catalog) Tournaments() []teetime.Tournament {
	out := make([]teetime.Tournament, len(c.tournaments))
	for i, t := range c.tournaments {
		days := make([]teetime.Day, len(t.Days))
		for j, d := range t.Days {
			days[j] = teetime.Day{Name: d.Name, Slots: append([]teetime.Slot(nil), d.Slots...)}
		}
		out[i] = teetime.Tournament{Name: t.Name, Days: days}
	}
	return out
}

func (c *Catalog) Slots() []teetime.Slot {
	var out []teetime.Slot
	for _, t := range c.tournaments {
		for _, d := range t.Days {
			out = append(out, d.Slots...)
		}
	}
	return out
}

// DaySlots lists the tee times of one day. An empty tournament collects the day across all tournaments.
func (c *Catalog) DaySlots(tournament, day string) ([]teetime.Slot, error) {
	var out []teetime.Slot
	for _, t := range c.tournaments {
		if tournament != "" && !teetime.SameTournament(t.Name, tournament) {
			continue
		}
		if d, ok := t.Day(day); ok {
			out = append(out, d.Slots...)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s on %s: %w", orAny(tournament), day, teetime.ErrUnknownSlot)
	}
	return out, nil
}

// Find resolves a tee time. The tournament may be left empty when the day and time name a single slot.
func (c *Catalog) Find(tournament, day, teeTime string) (teetime.Slot, error) {
	want := teetime.NormalizeTeeTime(teeTime)
	var matches []teetime.Slot
	for _, t := range c.tournaments {
		if tournament != "" && !teetime.SameTournament(t.Name, tournament) {
			continue
		}
		d, ok := t.Day(day)
		if !ok {
			continue
		}
		for _, s := range d.Slots {
			if teetime.NormalizeTeeTime(s.TeeTime) == want {
				matches = append(matches, s)
			}
		}
	}

	switch len(matches) {
	case 0:
		return teetime.Slot{}, fmt.Errorf("%s %s at %s: %w", orAny(tournament), day, teeTime, teetime.ErrUnknownSlot)
	case 1:
		return matches[0], nil
	default:
		return teetime.Slot{}, fmt.Errorf("%w: %s at %s is offered by more than one tournament, tournament is required",
			teetime.ErrValidation, day, teeTime)
	}
}

func orAny(tournament string) string {
	if tournament == "" {
		return "any tournament"
	}
	return tournament
}
