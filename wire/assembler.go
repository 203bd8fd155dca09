package wire

import (
	"fmt"
	"sort"
)

// Assembler collects MSPBlockMessage fragments for one fragmented response
// and reassembles them once the count announced by the lead message has been
// reached.
//
// Fragments may arrive out of order and, because the controller retransmits
// aggressively, the same fragment may arrive more than once. Fragments are
// keyed by message ID; duplicates are idempotent. The per-fragment relay
// header is stripped on add so Assemble only concatenates.
//
// Assembler is not safe for concurrent use. The session feeds it from its
// single receive loop, and the offline decoder from a single goroutine.
type Assembler struct {
	lead      *LeadMessage
	fragments map[uint32][]byte
}

// NewAssembler creates an assembler for the fragment sequence announced by
// lead.
func NewAssembler(lead *LeadMessage) *Assembler {
	return &Assembler{
		lead:      lead,
		fragments: make(map[uint32][]byte, lead.MsgBlockCount),
	}
}

// Add stores one block fragment and reports whether the set is complete.
// Non-block messages and duplicate fragments are ignored.
func (a *Assembler) Add(msg *Message) bool {
	if msg.Type != TypeMSPBlockMessage {
		return a.Complete()
	}
	if _, dup := a.fragments[msg.ID]; dup {
		return a.Complete()
	}

	payload := msg.Payload
	if len(payload) >= relayHeaderSize {
		payload = payload[relayHeaderSize:]
	}
	a.fragments[msg.ID] = payload

	return a.Complete()
}

// Received returns the number of distinct fragments collected so far.
func (a *Assembler) Received() int {
	return len(a.fragments)
}

// Complete reports whether every announced fragment has arrived.
func (a *Assembler) Complete() bool {
	return len(a.fragments) >= a.lead.MsgBlockCount
}

// Assemble concatenates the fragments in message ID order, inflates the
// result when the originating response was compressed, and trims the null
// terminator.
func (a *Assembler) Assemble(compressed bool) ([]byte, error) {
	if !a.Complete() {
		return nil, fmt.Errorf("%w: have %d of %d fragments",
			ErrFragmentation, len(a.fragments), a.lead.MsgBlockCount)
	}

	ids := make([]uint32, 0, len(a.fragments))
	for id := range a.fragments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []byte
	for _, id := range ids {
		out = append(out, a.fragments[id]...)
	}

	if compressed {
		inflated, err := inflate(out)
		if err != nil {
			return nil, err
		}
		out = inflated
	}

	return trimNull(out), nil
}
