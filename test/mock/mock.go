package mock

import (
	"fmt"
	"sync"

	"perceptron/core/msgbus"
)

// MockLog keeps every formatted line so tests can assert on what was logged.
type MockLog struct {
	Name string

	mutex sync.Mutex
	lines []string
}

func (l *MockLog) record(level string, line string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("[%s] %s", level, line))
}

func (l *MockLog) Debug(args ...interface{}) {
	l.record("DEBUG", fmt.Sprint(args...))
}

func (l *MockLog) Debugf(format string, args ...interface{}) {
	l.record("DEBUG", fmt.Sprintf(format, args...))
}

func (l *MockLog) Info(args ...interface{}) {
	l.record("INFO", fmt.Sprint(args...))
}

func (l *MockLog) Infof(format string, args ...interface{}) {
	l.record("INFO", fmt.Sprintf(format, args...))
}

func (l *MockLog) Warn(args ...interface{}) {
	l.record("WARN", fmt.Sprint(args...))
}

func (l *MockLog) Warnf(format string, args ...interface{}) {
	l.record("WARN", fmt.Sprintf(format, args...))
}

func (l *MockLog) Error(args ...interface{}) {
	l.record("ERROR", fmt.Sprint(args...))
}

func (l *MockLog) Errorf(format string, args ...interface{}) {
	l.record("ERROR", fmt.Sprintf(format, args...))
}

func (l *MockLog) Lines() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]string(nil), l.lines...)
}

func GetMockLogger(name string) *MockLog {
	return &MockLog{Name: name}
}

// MockSubscriber records bus messages in delivery order.
type MockSubscriber struct {
	Err error

	mutex sync.Mutex
	msgs  []*msgbus.BusMessage
}

func (s *MockSubscriber) HandleMsgFromMsgBus(msg *msgbus.BusMessage) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.Err
}

func (s *MockSubscriber) Messages() []*msgbus.BusMessage {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]*msgbus.BusMessage(nil), s.msgs...)
}
