package cache

// recencyNode links one tracked object into the recency list.
type recencyNode[K comparable] struct {
	key        K
	prev, next *recencyNode[K]
}

// recencyList orders keys from most (front) to least (back) recently used.
// It is not safe for concurrent use; the owning cache holds the lock.
type recencyList[K comparable] struct {
	front, back *recencyNode[K]
	size        int
}

func (l *recencyList[K]) pushFront(key K) *recencyNode[K] {
	n := &recencyNode[K]{key: key}
	l.link(n)
	return n
}

func (l *recencyList[K]) touch(n *recencyNode[K]) {
	if n == l.front {
		return
	}
	l.unlink(n)
	l.link(n)
}

func (l *recencyList[K]) remove(n *recencyNode[K]) {
	if n != nil {
		l.unlink(n)
	}
}

// oldest returns the least recently used key.
func (l *recencyList[K]) oldest() (K, bool) {
	if l.back == nil {
		var zero K
		return zero, false
	}
	return l.back.key, true
}

// keys returns every key from most to least recently used.
func (l *recencyList[K]) keys() []K {
	out := make([]K, 0, l.size)
	for n := l.front; n != nil; n = n.next {
		out = append(out, n.key)
	}
	return out
}

func (l *recencyList[K]) link(n *recencyNode[K]) {
	n.prev = nil
	n.next = l.front
	if l.front != nil {
		l.front.prev = n
	}
	l.front = n
	if l.back == nil {
		l.back = n
	}
	l.size++
}

func (l *recencyList[K]) unlink(n *recencyNode[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.back = n.prev
	}
	n.prev, n.next = nil, nil
	l.size--
}
