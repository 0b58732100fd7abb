// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package xcmsim

// inbox holds the pending inbound messages of one chain, one FIFO per channel.
type inbox [numChannels][]Message

// batch is the set of messages delivered to one chain in a dispatch round,
// ordered by channel then by enqueue order.
type batch struct {
	chain    ChainID
	messages []Message
}

// queues holds the inbound queues of every chain of a topology.
type queues struct {
	topology *Topology
	inboxes  map[ChainID]*inbox
}

func newQueues(topology *Topology) *queues {
	q := &queues{topology: topology}
	q.clear()
	return q
}

// enqueue validates the message route and appends the message to the
// inbound queue of its recipient for its channel.
func (q *queues) enqueue(msg Message) error {
	err := q.topology.checkRoute(msg.From, msg.To, msg.Channel)
	if err != nil {
		return err
	}

	inbox := q.inboxes[msg.To]
	inbox[msg.Channel] = append(inbox[msg.Channel], msg)
	return nil
}

// drainAll removes and returns every pending message, grouped per
// recipient. Batches are ordered relay chain first then by ascending
// parachain id, and within a batch by channel then enqueue order.
func (q *queues) drainAll() (batches []batch) {
	for _, id := range q.topology.ChainIDs() {
		inbox := q.inboxes[id]

		var messages []Message
		for _, channel := range Channels {
			messages = append(messages, inbox[channel]...)
			inbox[channel] = nil
		}

		if len(messages) > 0 {
			batches = append(batches, batch{chain: id, messages: messages})
		}
	}
	return batches
}

// pending returns the number of queued messages.
func (q *queues) pending() (count int) {
	for _, inbox := range q.inboxes {
		for _, messages := range inbox {
			count += len(messages)
		}
	}
	return count
}

func (q *queues) clear() {
	q.inboxes = make(map[ChainID]*inbox, len(q.topology.members))
	for _, id := range q.topology.ChainIDs() {
		q.inboxes[id] = new(inbox)
	}
}
