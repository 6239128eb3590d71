package entity

import (
	"fmt"
	"time"
)

// Kind tags the reviewable subject. One polymorphic review/vote/favorite
// table set is keyed by (kind, subject id) instead of one table pair per
// kind.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindSerie   Kind = "serie"
	KindSeason  Kind = "season"
	KindEpisode Kind = "episode"
	KindActor   Kind = "actor"
	KindCrew    Kind = "crew"
	KindPerson  Kind = "person"
)

var kinds = map[Kind]bool{
	KindMovie:   true,
	KindSerie:   true,
	KindSeason:  true,
	KindEpisode: true,
	KindActor:   true,
	KindCrew:    true,
	KindPerson:  true,
}

// ParseKind validates a kind coming from the URL path.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !kinds[k] {
		return "", fmt.Errorf("unknown subject kind %q", s)
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}

// Subject is a catalog row. Catalog management lives outside this
// service; we only read subjects to validate review/favorite targets
// and to label listings.
type Subject struct {
	ID        int64     `db:"id"`
	Kind      Kind      `db:"kind"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}
