package store

// MemorySlot keeps the snapshot in process memory. Nothing survives a
// restart; it backs dry runs and tests.
type MemorySlot struct {
	data []byte
	set  bool

	// GetErr and PutErr, when set, are returned instead of touching data.
	GetErr error
	PutErr error
}

func (m *MemorySlot) Get() ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if !m.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySlot) Put(b []byte) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.data = append(m.data[:0], b...)
	m.set = true
	return nil
}
