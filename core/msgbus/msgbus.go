package msgbus

import (
	"sync"
	"sync/atomic"

	"perceptron/common"
)

var defaultTopicSize int = 256

type BusMessage struct {
	MsgType   common.LocalMsgType
	SessionID string
	Msg       interface{}
}

type Subscriber interface {
	HandleMsgFromMsgBus(msg *BusMessage) error
}

type MessageBus interface {
	Register(topic common.LocalMsgType, sub Subscriber)
	UnRegister(topic common.LocalMsgType, sub Subscriber)
	Publish(sessionID string, t common.LocalMsgType, payload interface{})
	// Flush blocks until every message published so far has been handled.
	Flush()
	Reset()
}

type Topic interface {
	Register(sub Subscriber)
	UnRegister(sub Subscriber)
	Publish(msg *BusMessage)
	Flush()
	Stop()
}

// topicImpl delivers messages to its subscribers one at a time, in publish order.
type topicImpl struct {
	msgChan chan *BusMessage
	subs    atomic.Value //[]Subscriber
	mutex   sync.RWMutex
	pending sync.WaitGroup
	logger  common.Logger

	stop chan struct{}
	done chan struct{}
}

func newTopic(size int, logger common.Logger) Topic {
	t := &topicImpl{
		msgChan: make(chan *BusMessage, size),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		logger:  logger,
	}
	t.subs.Store([]Subscriber{})
	go t.handlePublish()
	return t
}

func (t *topicImpl) Register(sub Subscriber) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subs := t.subs.Load().([]Subscriber)
	// dedup
	for _, s := range subs {
		if s == sub {
			return
		}
	}
	newSubs := append(append([]Subscriber(nil), subs...), sub)
	t.subs.Store(newSubs)
}

func (t *topicImpl) UnRegister(sub Subscriber) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subs := t.subs.Load().([]Subscriber)
	for i, s := range subs {
		if s == sub {
			newSubs := append(append([]Subscriber(nil), subs[:i]...), subs[i+1:]...)
			t.subs.Store(newSubs)
			return
		}
	}
}

func (t *topicImpl) Publish(msg *BusMessage) {
	select {
	case <-t.done:
		return
	default:
	}
	t.pending.Add(1)
	select {
	case t.msgChan <- msg:
	case <-t.done:
		t.pending.Done()
	}
}

func (t *topicImpl) Flush() {
	t.pending.Wait()
}

// Stop drains queued messages and ends handlePublish.
func (t *topicImpl) Stop() {
	select {
	case <-t.stop:
	default:
		close(t.stop)
	}
	<-t.done
}

func (t *topicImpl) deliver(msg *BusMessage) {
	defer t.pending.Done()
	subs := t.subs.Load().([]Subscriber)
	for _, sub := range subs {
		if err := sub.HandleMsgFromMsgBus(msg); err != nil && t.logger != nil {
			t.logger.Warnf("subscriber failed on %s: %s", msg.MsgType, err)
		}
	}
}

func (t *topicImpl) handlePublish() {
	defer close(t.done)
	for {
		select {
		case msg := <-t.msgChan:
			t.deliver(msg)
		case <-t.stop:
			for {
				select {
				case msg := <-t.msgChan:
					t.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

type messageBusImpl struct {
	topics sync.Map //first class LocalMsgType -> Topic
	mutex  sync.Mutex
	logger common.Logger
}

func NewMessageBus(logger common.Logger) MessageBus {
	return &messageBusImpl{logger: logger}
}

func (mb *messageBusImpl) Register(topic common.LocalMsgType, sub Subscriber) {
	mb.mutex.Lock()
	defer mb.mutex.Unlock()

	firstClassTopic := topic.Type()
	if v, ok := mb.topics.Load(firstClassTopic); ok {
		v.(Topic).Register(sub)
		return
	}
	t := newTopic(defaultTopicSize, mb.logger)
	t.Register(sub)
	mb.topics.Store(firstClassTopic, t)
}

func (mb *messageBusImpl) UnRegister(topic common.LocalMsgType, sub Subscriber) {
	firstClassTopic := topic.Type()
	v, ok := mb.topics.Load(firstClassTopic)
	if !ok {
		return
	}
	v.(Topic).UnRegister(sub)
}

func (mb *messageBusImpl) Publish(sessionID string, topic common.LocalMsgType, msg interface{}) {
	firstClassTopic := topic.Type()
	v, ok := mb.topics.Load(firstClassTopic)
	if !ok {
		if mb.logger != nil {
			mb.logger.Debugf("no subscriber for topic[%d], drop %s", firstClassTopic, topic)
		}
		return
	}
	v.(Topic).Publish(&BusMessage{topic, sessionID, msg})
}

func (mb *messageBusImpl) Flush() {
	mb.topics.Range(func(_, v interface{}) bool {
		v.(Topic).Flush()
		return true
	})
}

func (mb *messageBusImpl) Reset() {
	mb.mutex.Lock()
	defer mb.mutex.Unlock()

	mb.topics.Range(func(k, v interface{}) bool {
		v.(Topic).Stop()
		mb.topics.Delete(k)
		return true
	})
}
