package cache

// lruNode is a node in the recency list. It carries its key so that eviction
// can delete the matching map entry.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is a doubly-linked recency list: head is the most recently used
// node, tail the least. It is not synchronized.
type lruList[K comparable] struct {
	head, tail *lruNode[K]
	len        int
}

// pushFront inserts key as the most recently used node.
func (l *lruList[K]) pushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.linkFront(n)
	return n
}

// moveToFront marks n as the most recently used node.
func (l *lruList[K]) moveToFront(n *lruNode[K]) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.linkFront(n)
}

// back returns the least recently used node, or nil.
func (l *lruList[K]) back() *lruNode[K] {
	return l.tail
}

func (l *lruList[K]) linkFront(n *lruNode[K]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}

func (l *lruList[K]) clear() {
	l.head, l.tail, l.len = nil, nil, 0
}
