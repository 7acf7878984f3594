// Package history records recently played sessions so they can be resumed.
package history

import (
	"sync"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/where"
)

var (
	cacherOnce sync.Once
	cacher     *gache.Cache[map[string]*SavedSession]
)

// registry provides the disk-backed store of sessions, keyed by media.
func registry() *gache.Cache[map[string]*SavedSession] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*SavedSession](
			&gache.Options{
				Path:       where.History(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	})
	return cacher
}

// Get returns every saved session.
func Get() (map[string]*SavedSession, error) {
	cached, expired, err := registry().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedSession), nil
	}
	return cached, nil
}

// Latest returns the most recently saved session, if any.
func Latest() (mo.Option[*SavedSession], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*SavedSession](), err
	}
	if len(saved) == 0 {
		return mo.None[*SavedSession](), nil
	}

	return mo.Some(lo.MaxBy(lo.Values(saved), func(a, b *SavedSession) bool {
		return a.SavedAt.After(b.SavedAt)
	})), nil
}

// Save stores the session, replacing an earlier record of the same media.
// A record without a position keeps the one already stored.
func Save(session *SavedSession) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, ok := saved[session.encode()]; ok && session.Position == 0 {
		session.Position = existing.Position
	}

	saved[session.encode()] = session
	return registry().Set(saved)
}

// Remove deletes the record of a session.
func Remove(session *SavedSession) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, session.encode())
	return registry().Set(saved)
}
