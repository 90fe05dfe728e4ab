package storage

// Memory is an in-memory Provider for tests. It is not safe for concurrent
// use, matching the single-writer model of the real stores.
type Memory struct {
	data map[string]string
	// SetCount tracks writes so tests can assert no-op detection.
	SetCount int
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Init() error  { return nil }
func (m *Memory) Load() error  { return nil }
func (m *Memory) Close() error { return nil }

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.data[key] = value
	m.SetCount++
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *Memory) GetConfigPath() string { return ":memory:" }
