package asyncexec

// SelectID identifies an in-flight select operation: one task waiting on
// several keys at once, the first of which to fire wins.
type SelectID uint64

// selectSub records every WakerKey a select operation subscribed to (and
// its timeout timer, if any), tracked so SelectClear can unregister every
// arm once one of them fires.
type selectSub struct {
	id      SelectID
	taskID  TaskID
	keys    []WakerKey
	timerID TimerID
}

// SelectNew starts a new select operation for the current task.
func (e *Executor) SelectNew() SelectID {
	if e.nextSelectID == 0 {
		e.nextSelectID = 1
	}
	id := e.nextSelectID
	e.nextSelectID++
	if e.selectSubs == nil {
		e.selectSubs = make(map[SelectID]*selectSub)
	}
	e.selectSubs[id] = &selectSub{id: id, taskID: e.current}
	return id
}

// SelectSetTimer arms a timeout arm for id, recording the TimerID so
// SelectClear can cancel it if a different arm fires first.
func (e *Executor) SelectSetTimer(id SelectID, delayMs uint64) TimerID {
	sub := e.selectSubs[id]
	if sub == nil {
		return 0
	}
	timerID := e.TimerScheduleAfter(sub.taskID, delayMs)
	sub.timerID = timerID
	sub.keys = append(sub.keys, TimerKey(timerID))
	return timerID
}

// SelectSubscribeKey registers a generic wait key as a select arm.
func (e *Executor) SelectSubscribeKey(id SelectID, key WakerKey) {
	sub := e.selectSubs[id]
	if sub == nil || !key.IsValid() {
		return
	}
	sub.keys = append(sub.keys, key)
	e.subscribeSelect(sub.taskID, id, key)
}

// SelectSubscribeRecv registers a channel-recv arm as a select arm.
func (e *Executor) SelectSubscribeRecv(id SelectID, channelID ChannelID) {
	e.SelectSubscribeKey(id, ChannelRecvKey(channelID))
}

// SelectSubscribeSend registers a channel-send arm as a select arm.
func (e *Executor) SelectSubscribeSend(id SelectID, channelID ChannelID) {
	e.SelectSubscribeKey(id, ChannelSendKey(channelID))
}

func (e *Executor) subscribeSelect(taskID TaskID, selectID SelectID, key WakerKey) {
	if e.waiters == nil {
		e.waiters = make(map[WakerKey][]Waiter)
	}
	e.waiters[key] = append(e.waiters[key], Waiter{TaskID: taskID, SelectID: selectID})
	if e.parked == nil {
		e.parked = make(map[TaskID]WakerKey)
	}
	e.parked[taskID] = key
	if task := e.tasks[taskID]; task != nil && task.Status != TaskDone {
		task.Status = TaskWaiting
	}
}

// SelectClearWaiters removes id's registrations from every key it
// subscribed to, without cancelling its timeout timer. Used once a
// select has definitely resolved via one of its non-timer arms.
func (e *Executor) SelectClearWaiters(id SelectID) {
	sub := e.selectSubs[id]
	if sub == nil {
		return
	}
	for _, key := range sub.keys {
		e.removeSelectWaiters(key, id)
	}
	sub.keys = nil
}

// SelectClear clears id's remaining registrations, cancels its timeout
// timer if any, and forgets the select operation entirely.
func (e *Executor) SelectClear(id SelectID) {
	sub := e.selectSubs[id]
	if sub == nil {
		return
	}
	e.SelectClearWaiters(id)
	if sub.timerID != 0 {
		e.TimerCancel(sub.timerID)
	}
	delete(e.selectSubs, id)
}

func (e *Executor) removeSelectWaiters(key WakerKey, selectID SelectID) {
	waiters := e.waiters[key]
	n := 0
	for _, w := range waiters {
		if w.SelectID == selectID {
			continue
		}
		waiters[n] = w
		n++
	}
	if n == 0 {
		delete(e.waiters, key)
		return
	}
	e.waiters[key] = waiters[:n]
}
