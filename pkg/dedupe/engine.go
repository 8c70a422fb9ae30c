package dedupe

import (
	"strings"

	"github.com/govcongiants/encore/pkg/report"
	"github.com/govcongiants/encore/pkg/youtube"
)

// Key is the identity of a record: two rows with the same Key are the same
// content appearing in multiple extracts. Date is empty except for the two
// documented cases where it disambiguates instances instead (recurring
// events with no title or link, and link-less posts on channels whose
// titles arrive inconsistently truncated).
type Key struct {
	Channel string
	Type    string
	Title   string
	Link    string
	Date    string
}

// Engine accumulates records into an identity map, merging collisions as
// they arrive. It owns every record handed to Add; iteration order is
// insertion order, which keeps the whole pipeline deterministic.
type Engine struct {
	rules    Rules
	keys     []Key
	records  map[Key]*report.Record
	priority map[report.DateSource]int
}

// NewEngine creates an empty engine with the given merge rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{
		rules:    rules,
		records:  make(map[Key]*report.Record),
		priority: report.DatePriority(),
	}
}

// KeyFor computes the identity key for a record. YouTube links are
// canonicalized first so the short, watch, and studio forms of one video
// collide. The date joins the key only when the normalized link is empty
// and either the title is empty too (recurring webinars, where only the
// date tells events apart) or the channel truncates titles inconsistently.
func (e *Engine) KeyFor(rec *report.Record) Key {
	k := Key{
		Channel: strings.TrimSpace(rec.Channel),
		Type:    strings.TrimSpace(rec.Type),
		Title:   strings.TrimSpace(rec.Title),
		Link:    strings.TrimSpace(rec.Link),
	}
	if rec.Link != "" && strings.EqualFold(k.Channel, report.ChannelYouTube) {
		if norm, ok := youtube.Normalize(rec.Link); ok {
			k.Link = norm
		}
	}
	if k.Link == "" {
		if k.Title == "" || truncatedTitleChannel(k.Channel) {
			k.Date = rec.DateISO
		}
	}
	return k
}

// truncatedTitleChannel reports whether a channel's titles may be truncated
// inconsistently across extracts, making title equality unsafe as identity.
func truncatedTitleChannel(channel string) bool {
	return strings.EqualFold(channel, report.ChannelLinkedIn) ||
		strings.EqualFold(channel, report.ChannelInstagram)
}

// Add inserts a record, merging it into the stored record when its identity
// collides with one already seen.
func (e *Engine) Add(rec *report.Record) {
	k := e.KeyFor(rec)
	stored, ok := e.records[k]
	if !ok {
		e.keys = append(e.keys, k)
		e.records[k] = rec
		return
	}
	e.records[k] = e.merge(stored, rec)
}

// merge decides which of two colliding records survives and returns it.
// A strictly better-sourced date wins outright, unless the stored record's
// impressions dwarf the incoming ones; then the date alone is grafted onto
// the stored record so a better date never erases materially better
// metrics. Equal tiers keep whichever record has more impressions, ties
// favoring the stored one.
func (e *Engine) merge(stored, incoming *report.Record) *report.Record {
	storedPri := e.priority[stored.DateSource]
	incomingPri := e.priority[incoming.DateSource]
	storedImp := stored.ImpressionsValue()
	incomingImp := incoming.ImpressionsValue()

	switch {
	case incomingPri > storedPri:
		if storedImp > incomingImp*e.rules.MagnitudeFactor && storedImp > e.rules.MagnitudeFloor {
			adoptDate(stored, incoming)
			return stored
		}
		return incoming
	case incomingPri == storedPri && incomingImp > storedImp:
		return incoming
	default:
		return stored
	}
}

// adoptDate grafts the date fields of src onto dst, leaving dst's metrics
// untouched. Empty date text on src keeps dst's; the source tier always
// follows src, since that is what justified the graft.
func adoptDate(dst, src *report.Record) {
	if src.DateRaw != "" {
		dst.DateRaw = src.DateRaw
	}
	if src.DateISO != "" {
		dst.DateISO = src.DateISO
		dst.Month = report.MonthKey(src.DateISO)
	}
	dst.DateSource = src.DateSource
}

// Len returns the number of distinct identities seen so far.
func (e *Engine) Len() int {
	return len(e.records)
}

// Records returns the surviving records in insertion order.
func (e *Engine) Records() []*report.Record {
	out := make([]*report.Record, 0, len(e.records))
	for _, k := range e.keys {
		if rec, ok := e.records[k]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// remove drops an identity from the map. The keys slice keeps its entry;
// Records skips identities that are no longer present.
func (e *Engine) remove(k Key) {
	delete(e.records, k)
}
