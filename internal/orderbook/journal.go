package orderbook

import (
	"fmt"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"

	"github.com/ethereum/go-ethereum/common"
)

type lengthEntry struct {
	n  int
	ok bool
}

type indexEntry struct {
	bidder common.Address
	card   model.Card
}

// journal records the original state of everything a mutation touches so a
// failed call can be undone. All writes during a mutation go through it.
type journal struct {
	b       *MemoryBook
	nodes   map[key]*node // nil: key was absent
	lengths map[model.Card]lengthEntry
	index   map[indexEntry]bool
}

func newJournal(b *MemoryBook) *journal {
	return &journal{
		b:       b,
		nodes:   make(map[key]*node),
		lengths: make(map[model.Card]lengthEntry),
		index:   make(map[indexEntry]bool),
	}
}

// atomically runs fn and rolls back every change it made if it fails.
// Callers hold b.mu.
func (b *MemoryBook) atomically(fn func(j *journal) error) error {
	j := newJournal(b)
	if err := fn(j); err != nil {
		j.rollback()
		return err
	}
	return nil
}

func (j *journal) save(k key) {
	if _, seen := j.nodes[k]; seen {
		return
	}
	n, ok := j.b.nodes[k]
	if !ok {
		j.nodes[k] = nil
		return
	}
	cp := *n
	cp.bid = n.bid.Clone()
	j.nodes[k] = &cp
}

// write returns the live node for (card, id) after recording its original state
func (j *journal) write(card model.Card, id common.Address) *node {
	k := key{card: card, bidder: id}
	j.save(k)
	return j.b.nodes[k]
}

func (j *journal) put(k key, n *node) {
	j.save(k)
	j.b.nodes[k] = n
}

func (j *journal) del(k key) {
	j.save(k)
	delete(j.b.nodes, k)
}

func (j *journal) ensureList(card model.Card) {
	k := key{card: card, bidder: Top}
	if _, ok := j.b.nodes[k]; !ok {
		j.put(k, &node{next: Top, prev: Top})
	}
}

// link places bid directly below prev
func (j *journal) link(card model.Card, prev common.Address, bid model.Bid) {
	p := j.write(card, prev)
	next := p.next
	nx := j.write(card, next)
	j.put(key{card: card, bidder: bid.Bidder}, &node{bid: bid, prev: prev, next: next})
	p.next = bid.Bidder
	nx.prev = bid.Bidder
	j.track(card, bid.Bidder, true)
}

// unlink detaches bidder from the card list and returns its bid
func (j *journal) unlink(card model.Card, bidder common.Address) (model.Bid, error) {
	cur, ok := j.b.nodes[key{card: card, bidder: bidder}]
	if !ok || bidder == Top {
		return model.Bid{}, fmt.Errorf("unlink %s from card %s: %w", bidder.Hex(), card, orderbookerrors.ErrBidNotFound)
	}
	for _, id := range []common.Address{cur.prev, cur.next} {
		if _, ok := j.b.nodes[key{card: card, bidder: id}]; !ok {
			return model.Bid{}, fmt.Errorf("unlink %s from card %s: %w - dangling link to %s",
				bidder.Hex(), card, orderbookerrors.ErrCorruptList, id.Hex())
		}
	}

	n := j.write(card, bidder)
	p := j.write(card, n.prev)
	nx := j.write(card, n.next)
	p.next = n.next
	nx.prev = n.prev
	j.del(key{card: card, bidder: bidder})
	j.track(card, bidder, false)
	return n.bid, nil
}

func (j *journal) track(card model.Card, bidder common.Address, present bool) {
	if _, seen := j.lengths[card]; !seen {
		n, ok := j.b.lengths[card]
		j.lengths[card] = lengthEntry{n: n, ok: ok}
	}
	ie := indexEntry{bidder: bidder, card: card}
	if _, seen := j.index[ie]; !seen {
		j.index[ie] = j.b.indexed(bidder, card)
	}

	if present {
		j.b.lengths[card]++
		j.b.indexAdd(bidder, card)
		return
	}
	j.b.lengths[card]--
	j.b.indexDel(bidder, card)
}

func (j *journal) rollback() {
	for k, n := range j.nodes {
		if n == nil {
			delete(j.b.nodes, k)
			continue
		}
		j.b.nodes[k] = n
	}
	for card, e := range j.lengths {
		if !e.ok {
			delete(j.b.lengths, card)
			continue
		}
		j.b.lengths[card] = e.n
	}
	for ie, had := range j.index {
		if had {
			j.b.indexAdd(ie.bidder, ie.card)
		} else {
			j.b.indexDel(ie.bidder, ie.card)
		}
	}
}
