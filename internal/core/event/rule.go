package event

// Condition is a pure predicate over an event. It must not mutate state.
type Condition[T any] func(ev T) bool

// Rule binds a condition and an action to exactly one event type.
// A nil When always holds.
type Rule[T any] struct {
	Name string
	When Condition[T]
	Then func(ev T)
}

// rule is the type-erased form stored by the Bus.
type rule struct {
	name string
	cond func(ev Event) bool
	act  func(ev Event)
}

// Register binds rules to the concrete event type T. Registration happens at
// startup; rules never know about each other.
func Register[T any](b *Bus, rules ...Rule[T]) {
	key := typeKey[T]()
	for _, r := range rules {
		r := r
		if r.Then == nil {
			continue
		}
		b.add(key, rule{
			name: r.Name,
			cond: func(ev Event) bool {
				if r.When == nil {
					return true
				}
				return r.When(ev.(T))
			},
			act: func(ev Event) { r.Then(ev.(T)) },
		})
	}
}

// RuleCount returns the number of rules bound to T.
func RuleCount[T any](b *Bus) int {
	return len(b.rules[typeKey[T]()])
}

// All holds when every condition holds.
func All[T any](conds ...Condition[T]) Condition[T] {
	return func(ev T) bool {
		for _, c := range conds {
			if !c(ev) {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one condition holds.
func Any[T any](conds ...Condition[T]) Condition[T] {
	return func(ev T) bool {
		for _, c := range conds {
			if c(ev) {
				return true
			}
		}
		return false
	}
}

func Not[T any](c Condition[T]) Condition[T] {
	return func(ev T) bool { return !c(ev) }
}
