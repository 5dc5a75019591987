package web

import (
	"github.com/vovakirdan/cupid-arrow/internal/game"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
)

// clientMessage is any command sent by the browser. Type selects which of the
// other fields are read.
type clientMessage struct {
	Type   string `json:"type"` // start | move | item | screen | submit | rankings
	Left   bool   `json:"left"`
	Right  bool   `json:"right"`
	Item   string `json:"item"`
	Screen string `json:"screen"`
	Name   string `json:"name"`
}

type snapshotMessage struct {
	Type string `json:"type"`
	game.Snapshot
	Notice string `json:"notice,omitempty"`
}

type rankingsMessage struct {
	Type    string          `json:"type"`
	Entries []ranking.Entry `json:"entries"`
	Loading bool            `json:"loading"`
}

type submittedMessage struct {
	Type      string `json:"type"`
	Name      string `json:"name,omitempty"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
	Persisted bool   `json:"persisted"`
	Error     string `json:"error,omitempty"`
}
