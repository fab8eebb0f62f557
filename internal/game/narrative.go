package game

// EntryKind tags a narrative entry for presentation.
type EntryKind uint8

const (
	EntrySystem EntryKind = iota
	EntryMus
	EntryDiscard
	EntryBid
	EntryAnnounce
	EntryScore
	EntrySignal
	EntryReveal
)

func (k EntryKind) String() string {
	return [...]string{"system", "mus", "discard", "bid", "announce", "score", "signal", "reveal"}[k]
}

// Entry is one line of table narrative.
type Entry struct {
	Seq    int
	Player PlayerID // empty for system entries
	Kind   EntryKind
	Text   string
}

// Narrative is a bounded log that keeps the most recent entries.
type Narrative struct {
	Entries []Entry
	Size    int
	Seq     int
}

// NewNarrative returns an empty narrative holding at most size entries.
func NewNarrative(size int) Narrative {
	return Narrative{Size: size}
}

// Add appends an entry, dropping the oldest one when full.
func (n *Narrative) Add(player PlayerID, kind EntryKind, text string) {
	n.Seq++
	n.Entries = append(n.Entries, Entry{Seq: n.Seq, Player: player, Kind: kind, Text: text})
	if n.Size > 0 && len(n.Entries) > n.Size {
		n.Entries = append([]Entry(nil), n.Entries[len(n.Entries)-n.Size:]...)
	}
}

// Since returns the entries with a sequence number above seq.
func (n Narrative) Since(seq int) []Entry {
	for i, e := range n.Entries {
		if e.Seq > seq {
			return append([]Entry(nil), n.Entries[i:]...)
		}
	}
	return nil
}

func (n Narrative) clone() Narrative {
	n.Entries = append([]Entry(nil), n.Entries...)
	return n
}
