package session

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync/atomic"
)

// msgIDGenerator generates controller message IDs for one session.
//
// It seeds the starting ID from a cryptographically secure random source and
// atomically increments it, so concurrent callers never reuse an ID and two
// sessions against the same controller are unlikely to collide.
type msgIDGenerator struct {
	id atomic.Uint32
}

func newMsgIDGenerator() *msgIDGenerator {
	inst := &msgIDGenerator{}
	var buf [4]byte
	_, err := io.ReadFull(rand.Reader, buf[:])
	if err != nil {
		return inst
	}
	inst.id.Store(binary.LittleEndian.Uint32(buf[:]))
	return inst
}

func (m *msgIDGenerator) genID() uint32 {
	return m.id.Add(1)
}
