package contract

// organizerShardSize is the capacity of one organizer shard. Changing it
// breaks enumeration of already written shards.
const organizerShardSize uint32 = 50

// organizerIndex maintains the per-organizer sharded list of event IDs, the
// organizer's event count and the membership witness for each event.
type organizerIndex struct {
	ls *ledgerStore
}

func newOrganizerIndex(ls *ledgerStore) *organizerIndex {
	return &organizerIndex{ls: ls}
}

func shardCount(count uint32) uint32 {
	return (count + organizerShardSize - 1) / organizerShardSize
}

func (oi *organizerIndex) count(organizer string) (uint32, error) {
	key, err := oi.ls.keys.organizerEventCount(organizer)
	if err != nil {
		return 0, err
	}
	var count uint32
	_, err = oi.ls.getJSON(key, &count)
	return count, err
}

func (oi *organizerIndex) contains(organizer, eventID string) (bool, error) {
	key, err := oi.ls.keys.organizerEvent(organizer, eventID)
	if err != nil {
		return false, err
	}
	return oi.ls.has(key)
}

// shard returns an empty slice for a shard that was never written.
func (oi *organizerIndex) shard(organizer string, shardID uint32) ([]string, error) {
	key, err := oi.ls.keys.organizerEventShard(organizer, shardID)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	if _, err := oi.ls.getJSON(key, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// events concatenates every shard of the organizer in registration order.
// This costs one read per shard; callers with large organizers should page
// with shard instead.
func (oi *organizerIndex) events(organizer string) ([]string, error) {
	count, err := oi.count(organizer)
	if err != nil {
		return nil, err
	}
	all := make([]string, 0, count)
	for s := uint32(0); s < shardCount(count); s++ {
		ids, err := oi.shard(organizer, s)
		if err != nil {
			return nil, err
		}
		all = append(all, ids...)
	}
	return all, nil
}

// add appends eventID to the organizer's index. It reports false and writes
// nothing if the event is already indexed for this organizer.
func (oi *organizerIndex) add(organizer, eventID string) (bool, error) {
	indexed, err := oi.contains(organizer, eventID)
	if err != nil {
		return false, err
	}
	if indexed {
		return false, nil
	}

	count, err := oi.count(organizer)
	if err != nil {
		return false, err
	}
	shardID := count / organizerShardSize
	ids, err := oi.shard(organizer, shardID)
	if err != nil {
		return false, err
	}

	shardKey, err := oi.ls.keys.organizerEventShard(organizer, shardID)
	if err != nil {
		return false, err
	}
	if err := oi.ls.putJSON(shardKey, append(ids, eventID)); err != nil {
		return false, err
	}
	memberKey, err := oi.ls.keys.organizerEvent(organizer, eventID)
	if err != nil {
		return false, err
	}
	if err := oi.ls.putJSON(memberKey, true); err != nil {
		return false, err
	}
	countKey, err := oi.ls.keys.organizerEventCount(organizer)
	if err != nil {
		return false, err
	}
	if err := oi.ls.putJSON(countKey, count+1); err != nil {
		return false, err
	}
	return true, nil
}
