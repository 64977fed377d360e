package hero

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

//go:embed data
var data embed.FS

type Table struct {
	heroes  []Hero
	byName  map[string]Hero
	tags    map[Hero]Tag
	byTag   map[Tag]mapset.Set[Hero]
	similar map[Hero][]Hero
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded data files.
func Default() *Table {
	defaultOnce.Do(func() {
		heroes, err := data.Open("data/heroes.csv")
		if err != nil {
			panic(err)
		}
		defer heroes.Close()
		similarity, err := data.Open("data/hero_similarity.csv")
		if err != nil {
			panic(err)
		}
		defer similarity.Close()
		defaultTable, err = Load(heroes, similarity)
		if err != nil {
			panic(fmt.Errorf("embedded hero data: %w", err))
		}
	})
	return defaultTable
}

// Load reads "name,tag" lines from heroes and an optional similarity matrix
// whose header row lists hero names and whose rows start with the hero name
// followed by one score per column.
func Load(heroes io.Reader, similarity io.Reader) (*Table, error) {
	t := &Table{
		byName:  make(map[string]Hero),
		tags:    make(map[Hero]Tag),
		byTag:   make(map[Tag]mapset.Set[Hero]),
		similar: make(map[Hero][]Hero),
	}
	for tag := range tagNames {
		t.byTag[tag] = mapset.NewThreadUnsafeSet[Hero]()
	}

	r := csv.NewReader(heroes)
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read heroes: %w", err)
		}
		tag, err := ParseTag(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("hero %s: %w", record[0], err)
		}
		h := Hero(strings.TrimSpace(record[0]))
		if _, ok := t.tags[h]; ok {
			return nil, fmt.Errorf("duplicate hero %s", h)
		}
		t.heroes = append(t.heroes, h)
		t.byName[normalize(string(h))] = h
		t.tags[h] = tag
		t.byTag[tag].Add(h)
	}
	sort.Slice(t.heroes, func(i, j int) bool { return t.heroes[i] < t.heroes[j] })

	if similarity != nil {
		if err := t.loadSimilarity(similarity); err != nil {
			return nil, fmt.Errorf("read hero similarity: %w", err)
		}
	}
	return t, nil
}

func (t *Table) loadSimilarity(src io.Reader) error {
	r := csv.NewReader(src)
	header, err := r.Read()
	if err != nil {
		return err
	}
	columns := make([]Hero, 0, len(header)-1)
	for _, name := range header[1:] { // first column is the row hero
		h, err := t.Parse(name)
		if err != nil {
			return err
		}
		columns = append(columns, h)
	}

	type scored struct {
		hero  Hero
		score float64
	}
	for i := 0; ; i++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		h, err := t.Parse(row[0])
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if len(row)-1 != len(columns) {
			return fmt.Errorf("row %d does not contain all columns", i)
		}
		scores := make([]scored, 0, len(columns))
		for j, v := range row[1:] {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			scores = append(scores, scored{hero: columns[j], score: f})
		}
		sort.SliceStable(scores, func(a, b int) bool { return scores[a].score > scores[b].score })
		if scores[0].hero != h {
			return fmt.Errorf("hero is not its own closest hero: %s", h)
		}
		similar := make([]Hero, 0, len(scores)-1)
		for _, s := range scores[1:] {
			similar = append(similar, s.hero)
		}
		t.similar[h] = similar
	}
}

// Parse validates a free text hero name. Matching ignores case.
func (t *Table) Parse(name string) (Hero, error) {
	h, ok := t.byName[normalize(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHero, name)
	}
	return h, nil
}

// All returns every hero sorted by name.
func (t *Table) All() []Hero {
	return append([]Hero(nil), t.heroes...)
}

func (t *Table) Set() mapset.Set[Hero] {
	return mapset.NewThreadUnsafeSet[Hero](t.heroes...)
}

func (t *Table) Tag(h Hero) (Tag, bool) {
	tag, ok := t.tags[h]
	return tag, ok
}

// WithTag returns a copy of the set of heroes tagged tag.
func (t *Table) WithTag(tag Tag) mapset.Set[Hero] {
	if s, ok := t.byTag[tag]; ok {
		return s.Clone()
	}
	return mapset.NewThreadUnsafeSet[Hero]()
}

// Similar lists other heroes by descending closeness to h.
func (t *Table) Similar(h Hero) []Hero {
	return t.similar[h]
}
