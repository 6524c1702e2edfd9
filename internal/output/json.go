package output

import (
	"encoding/json"

	"timetable/internal/core"
	"timetable/internal/entity"
	"timetable/internal/store"
)

type jsonFormatter struct{}

type jsonColumn struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Nullable      bool   `json:"nullable"`
	PrimaryKey    bool   `json:"primaryKey,omitempty"`
	AutoIncrement bool   `json:"autoIncrement,omitempty"`
}

type jsonReference struct {
	Column       string `json:"column"`
	TargetTable  string `json:"targetTable"`
	TargetColumn string `json:"targetColumn"`
}

type jsonTable struct {
	Name       string          `json:"name"`
	Columns    []jsonColumn    `json:"columns"`
	References []jsonReference `json:"references,omitempty"`
}

type schemaPayload struct {
	Format  string `json:"format"`
	Summary struct {
		Tables        int `json:"tables"`
		SQLStatements int `json:"sqlStatements"`
	} `json:"summary"`
	Tables []jsonTable `json:"tables"`
	SQL    []string    `json:"sql"`
}

type reportPayload struct {
	Format string              `json:"format"`
	OK     bool                `json:"ok"`
	Tables []store.TableReport `json:"tables"`
}

type catalogPayload struct {
	Format string         `json:"format"`
	Counts map[string]int `json:"counts"`
	SQL    []string       `json:"sql,omitempty"`
}

type Payload interface {
	schemaPayload | reportPayload | catalogPayload
}

func (jsonFormatter) FormatSchema(blueprints []*core.Schema, drop bool) (string, error) {
	payload := schemaPayload{Format: string(FormatJSON)}
	payload.Tables = make([]jsonTable, 0, len(blueprints))
	for _, bp := range blueprints {
		payload.Tables = append(payload.Tables, newJSONTable(bp))
	}
	payload.SQL = schemaStatements(blueprints, drop)
	payload.Summary.Tables = len(payload.Tables)
	payload.Summary.SQLStatements = len(payload.SQL)
	return marshalJSON(payload)
}

func newJSONTable(s *core.Schema) jsonTable {
	t := jsonTable{Name: s.Name()}
	for _, c := range s.Columns() {
		t.Columns = append(t.Columns, jsonColumn{
			Name:          c.Name(),
			Type:          c.SQLType(),
			Nullable:      c.Nullable(),
			PrimaryKey:    c.PrimaryKey(),
			AutoIncrement: c.AutoIncrement(),
		})
	}
	for _, l := range s.Links() {
		t.References = append(t.References, jsonReference{
			Column:       l.Column(),
			TargetTable:  l.TargetTable(),
			TargetColumn: l.TargetColumn(),
		})
	}
	return t
}

func (jsonFormatter) FormatReport(r *store.Report) (string, error) {
	payload := reportPayload{Format: string(FormatJSON), Tables: []store.TableReport{}}
	if r != nil {
		payload.OK = r.OK()
		payload.Tables = append(payload.Tables, r.Tables...)
	}
	return marshalJSON(payload)
}

func (jsonFormatter) FormatCatalog(c *entity.Catalog) (string, error) {
	payload := catalogPayload{Format: string(FormatJSON), Counts: map[string]int{}}
	if c != nil {
		for t, n := range c.Counts() {
			payload.Counts[t.String()] = n
		}
		sql, err := catalogStatements(c)
		if err != nil {
			return "", err
		}
		payload.SQL = sql
	}
	return marshalJSON(payload)
}

func marshalJSON[T Payload](payload T) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
