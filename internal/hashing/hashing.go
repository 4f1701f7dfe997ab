package hashing

// DuplicateDetector tracks finished games to spot duplicates in a batch.
type DuplicateDetector struct {
	// hashTable stores seen signatures by final position key
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the move sequences to match
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
	// maxCapacity limits the number of stored signatures (0 = unlimited)
	maxCapacity int
	// size is the number of stored signatures
	size int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// MoveCount is the number of half-moves in the game
	MoveCount int
	// MovesHash hashes the move notation sequence
	MovesHash uint64
}

// NewGameSignature builds the signature of a game from its final position
// key and its move notation.
func NewGameSignature(hash uint64, notation []string) GameSignature {
	return GameSignature{
		Hash:      hash,
		MoveCount: len(notation),
		MovesHash: HashMoveSequence(notation),
	}
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate. Once full, new signatures are
// checked but not stored.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature) bool {
	if existing, ok := d.hashTable[sig.Hash]; ok {
		for _, existingSig := range existing {
			if d.signaturesMatch(sig, existingSig) {
				d.duplicateCount++
				return true
			}
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.size++
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash {
		return false
	}
	if d.useExactMatch && (a.MoveCount != b.MoveCount || a.MovesHash != b.MovesHash) {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
	d.size = 0
}

// HashMoveSequence creates a hash from the move texts.
func HashMoveSequence(notation []string) uint64 {
	var hash uint64
	multiplier := uint64(31)

	for _, text := range notation {
		for _, c := range text {
			hash = hash*multiplier + uint64(c)
		}
		hash = hash*multiplier + ' '
	}
	return hash
}
