package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/JotaGreen/keytap-sub001/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

// InputsCompact is the stored shape of a performance's key presses:
// one row per pitch class, press times in the order they landed.
type InputsCompact struct {
	Class game.PitchClass
	Times []time.Duration
}

func compactInputs(inputs []game.KeyPress) []InputsCompact {
	classCount := game.PitchClass(0)
	for _, p := range inputs {
		if p.Class >= classCount {
			classCount = p.Class + 1
		}
	}
	ins := make([]InputsCompact, classCount)
	for i := range ins {
		ins[i].Class = game.PitchClass(i)
	}
	for _, p := range inputs {
		ins[p.Class].Times = append(ins[p.Class].Times, p.Time)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.KeyPress {
	presses := []game.KeyPress{}
	for _, i := range inputs {
		for _, t := range i.Times {
			presses = append(presses, game.KeyPress{Class: i.Class, Time: t})
		}
	}
	return presses
}

func (s *DefaultScorer) Init() error {
	db, err := sql.Open("sqlite3", s.path)
	if nil != err {
		return fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists sessions
	  (
		  id integer not null primary key,
		  sum text,
		  rate real,
		  score integer,
		  max_combo integer,
		  perfect integer,
		  good integer,
		  miss integer,
		  health integer,
		  completed integer,
		  inputs bytearray
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create sessions table: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// hashChart identifies a chart by its name and note content. Judgement
// state is excluded, so a played chart hashes the same as a fresh one.
func hashChart(c *game.Chart) string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, n := range c.Notes {
		fmt.Fprintf(&b, ";%d:%d", n.Time.Nanoseconds(), n.Midi)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultScorer) Save(c *game.Chart, inputs []game.KeyPress, rate float64) {
	if nil == s.db {
		return
	}
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		log.Println("unable to marshal inputs", err)
		return
	}
	st := s.state
	_, err = s.db.Exec(
		`insert into sessions(sum, rate, score, max_combo, perfect, good, miss, health, completed, inputs)
		 values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hashChart(c), rate, st.Score, st.MaxCombo,
		st.PerfectCount, st.GoodCount, st.MissCount,
		st.Health, st.Completed, data)
	if nil != err {
		log.Println("unable to save session", err)
		return
	}
}

func (s *DefaultScorer) Load(c *game.Chart) []History {
	histories := []History{}
	if nil == s.db {
		return histories
	}
	rows, err := s.db.Query(
		`select sum, rate, score, max_combo, perfect, good, miss, health, completed, inputs
		 from sessions where sum = ?`, hashChart(c))
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load sessions", err)
		return histories
	}
	defer rows.Close()
	for rows.Next() {
		var h History
		var inputs []byte
		if err := rows.Scan(&h.Sum, &h.Rate, &h.Score, &h.MaxCombo,
			&h.Perfect, &h.Good, &h.Miss, &h.Health, &h.Completed, &inputs); nil != err {
			log.Println("unable to scan session", err)
			continue
		}
		var ns []InputsCompact
		if err := json.Unmarshal(inputs, &ns); nil != err {
			log.Println("unable to unmarshal input history")
			continue
		}
		h.Inputs = uncompactInputs(ns)
		histories = append(histories, h)
	}
	return histories
}
