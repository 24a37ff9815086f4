// Package hashing provides position hashing and duplicate position detection.
package hashing

import (
	"math/rand"
	"sync"

	"github.com/lgbarn/gamehub-go/internal/chess"
)

const zobristSeed = 0x5eed

var (
	zobristPieces      [2][6][chess.BoardSize * chess.BoardSize]uint64
	zobristBlackToMove uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := range zobristPieces {
		for k := range zobristPieces[c] {
			for sq := range zobristPieces[c][k] {
				zobristPieces[c][k][sq] = r.Uint64()
			}
		}
	}
	zobristBlackToMove = r.Uint64()
}

// GenerateZobristHash hashes the piece placement and side to move. Castling,
// en passant and the move counters are ignored, so the same position reached
// at different move numbers hashes equally.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			if p := board.Grid[rank][file]; p != nil {
				hash ^= zobristPieces[p.Colour][p.Kind][rank*chess.BoardSize+file]
			}
		}
	}
	if board.SideToMove == chess.Black {
		hash ^= zobristBlackToMove
	}
	return hash
}

// WeakHash is a cheap secondary hash: the sum of piece codes weighted by
// square, plus the side to move.
func WeakHash(board *chess.Board) uint32 {
	var hash uint32
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			if p := board.Grid[rank][file]; p != nil {
				code := uint32(p.Kind) + 1 + 6*uint32(p.Colour)
				hash += code * uint32(rank*chess.BoardSize+file+1)
			}
		}
	}
	return hash + uint32(board.SideToMove)
}

// PositionSignature identifies a position for duplicate detection.
type PositionSignature struct {
	Hash     uint64 // Zobrist hash
	WeakHash uint32
	Index    int // Index of the first occurrence
}

// DuplicateDetector tracks seen positions. It is safe for concurrent use.
type DuplicateDetector struct {
	mu        sync.Mutex
	hashTable map[uint64][]PositionSignature
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{
		hashTable: make(map[uint64][]PositionSignature),
	}
}

// CheckAndAdd records the position seen at index. If the position was seen
// before it returns the index of the first occurrence and true.
func (d *DuplicateDetector) CheckAndAdd(board *chess.Board, index int) (int, bool) {
	if board == nil {
		return 0, false
	}
	sig := PositionSignature{
		Hash:     GenerateZobristHash(board),
		WeakHash: WeakHash(board),
		Index:    index,
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.hashTable[sig.Hash] {
		if existing.WeakHash == sig.WeakHash {
			return existing.Index, true
		}
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return index, false
}
