package asyncexec

import "fmt"

// ScopeID identifies a structured-concurrency scope.
type ScopeID uint64

// Scope tracks the children spawned within an async body, so the
// executor can enforce that none remain live when the scope exits and
// can fail the whole scope fast if one child errors.
type Scope struct {
	ID                ScopeID
	Owner             TaskID
	Children          []TaskID
	Failfast          bool
	FailfastTriggered bool
}

// EnterScope registers a new scope owned by owner.
func (e *Executor) EnterScope(owner TaskID, failfast bool) ScopeID {
	if e.nextScopeID == 0 {
		e.nextScopeID = 1
	}
	id := e.nextScopeID
	e.nextScopeID++
	if e.scopes == nil {
		e.scopes = make(map[ScopeID]*Scope)
	}
	e.scopes[id] = &Scope{ID: id, Owner: owner, Failfast: failfast}
	if task := e.tasks[owner]; task != nil {
		task.ScopeID = id
	}
	return id
}

// ExitScope validates that every registered child completed and removes
// the scope. Panics if any child is still live, matching the teacher's
// own "structured concurrency means the scope never outlives its
// children" discipline.
func (e *Executor) ExitScope(scopeID ScopeID) {
	scope := e.scopes[scopeID]
	if scope == nil {
		return
	}
	live := make([]TaskID, 0, len(scope.Children))
	for _, child := range scope.Children {
		task := e.tasks[child]
		if task == nil || task.Status == TaskDone {
			continue
		}
		live = append(live, child)
	}
	if len(live) > 0 {
		panic(fmt.Sprintf("asyncexec: scope %d exited with live children: %v", scopeID, live))
	}
	delete(e.scopes, scopeID)
	if task := e.tasks[scope.Owner]; task != nil && task.ScopeID == scopeID {
		task.ScopeID = 0
	}
}

// RegisterChild records child as a member of scopeID.
func (e *Executor) RegisterChild(scopeID ScopeID, child TaskID) {
	scope := e.scopes[scopeID]
	if scope == nil {
		return
	}
	scope.Children = append(scope.Children, child)
	if task := e.tasks[child]; task != nil {
		task.ParentScopeID = scopeID
	}
}

// CancelAllChildren cancels every child of scopeID, in spawn order.
func (e *Executor) CancelAllChildren(scopeID ScopeID) {
	scope := e.scopes[scopeID]
	if scope == nil {
		return
	}
	for _, child := range scope.Children {
		e.Cancel(child)
	}
}

// JoinAllChildrenBlocking reports the next child to wait on, or that the
// scope's children are all done, along with whether failfast was
// triggered at any point.
func (e *Executor) JoinAllChildrenBlocking(scopeID ScopeID) (done bool, pending TaskID, failfast bool) {
	scope := e.scopes[scopeID]
	if scope == nil {
		return true, 0, false
	}
	for _, child := range scope.Children {
		task := e.tasks[child]
		if task == nil || task.Status == TaskDone {
			continue
		}
		return false, child, scope.FailfastTriggered
	}
	return true, 0, scope.FailfastTriggered
}
