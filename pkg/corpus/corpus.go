package corpus

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/engine/kinematics"
	"github.com/ridelens/ridelens/pkg/util"
	"go.uber.org/zap"
)

const clipArchiveExt = ".clip.bz2"

// Corpus. in-memory collection of loaded clips with a small cache of computed
// speed profiles. safe for concurrent readers and writers.
type Corpus struct {
	log *zap.Logger

	mu    sync.RWMutex
	clips map[string]*datastructure.Clip

	profileCache *lru.Cache[string, *datastructure.SpeedProfile]
}

func NewCorpus(logger *zap.Logger) *Corpus {
	profileCache, _ := lru.New[string, *datastructure.SpeedProfile](128)
	return &Corpus{
		log:          logger,
		clips:        make(map[string]*datastructure.Clip),
		profileCache: profileCache,
	}
}

// LoadDir. read every clip archive under dir. returns the number of clips
// loaded; unreadable archives abort the load.
func (c *Corpus) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), clipArchiveExt) {
			continue
		}

		clip, err := datastructure.ReadClip(filepath.Join(dir, entry.Name()))
		if err != nil {
			return loaded, err
		}
		c.Add(clip)
		loaded++

		c.log.Info("loaded clip archive",
			zap.String("id", clip.Id()),
			zap.Int("points", clip.NumPoints()),
			zap.Int("markers", len(clip.Markers())))
	}
	return loaded, nil
}

// Add. register a clip, assigning an id and the standard frame rate when
// either is missing. an existing clip with the same id is replaced and its
// cached profile dropped.
func (c *Corpus) Add(clip *datastructure.Clip) *datastructure.Clip {
	if clip.Id() == "" || clip.FrameRate() <= 0 {
		id := clip.Id()
		if id == "" {
			id = uuid.New().String()
		}
		frameRate := clip.FrameRate()
		if frameRate <= 0 {
			frameRate = pkg.FRAME_RATE_STANDARD
		}
		clip = datastructure.NewClip(id, frameRate, clip.Points(), clip.Markers())
	}

	c.mu.Lock()
	c.clips[clip.Id()] = clip
	c.mu.Unlock()
	c.profileCache.Remove(clip.Id())

	return clip
}

func (c *Corpus) Get(id string) (*datastructure.Clip, error) {
	c.mu.RLock()
	clip, ok := c.clips[id]
	c.mu.RUnlock()
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "clip %s not found", id)
	}
	return clip, nil
}

// List. every loaded clip, ordered by id.
func (c *Corpus) List() []*datastructure.Clip {
	c.mu.RLock()
	clips := make([]*datastructure.Clip, 0, len(c.clips))
	for _, clip := range c.clips {
		clips = append(clips, clip)
	}
	c.mu.RUnlock()

	sort.Slice(clips, func(i, j int) bool {
		return clips[i].Id() < clips[j].Id()
	})
	return clips
}

func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clips)
}

// Profile. speed profile of the clip at its own frame rate, cached per clip id.
func (c *Corpus) Profile(id string) (*datastructure.SpeedProfile, error) {
	if profile, ok := c.profileCache.Get(id); ok {
		return profile, nil
	}

	clip, err := c.Get(id)
	if err != nil {
		return nil, err
	}

	profile := kinematics.Profile(clip.Points(), clip.FrameRate())
	c.profileCache.Add(id, profile)
	return profile, nil
}
