// Package indexer maintains an inverted index over catalog endpoints.
package indexer

import (
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// Indexer maintains in-memory indexes over endpoints using Roaring bitmaps.
// Document ids are positions in catalog order.
type Indexer struct {
	mu sync.RWMutex

	docs []explorer.Endpoint
	all  *roaring.Bitmap

	idxTier      map[client.Tier]*roaring.Bitmap
	idxMethod    map[string]*roaring.Bitmap
	idxToken     map[string]*roaring.Bitmap // name, path, summary and parameter names
	idxNameToken map[string]*roaring.Bitmap // name only, used for scoring
}

// New creates an empty Indexer.
func New() *Indexer {
	idx := &Indexer{}
	idx.reset()
	return idx
}

func (idx *Indexer) reset() {
	idx.docs = nil
	idx.all = roaring.New()
	idx.idxTier = make(map[client.Tier]*roaring.Bitmap)
	idx.idxMethod = make(map[string]*roaring.Bitmap)
	idx.idxToken = make(map[string]*roaring.Bitmap)
	idx.idxNameToken = make(map[string]*roaring.Bitmap)
}

// Rebuild replaces the index contents with endpoints.
func (idx *Indexer) Rebuild(endpoints []explorer.Endpoint) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.reset()
	idx.docs = make([]explorer.Endpoint, len(endpoints))
	copy(idx.docs, endpoints)

	for i := range idx.docs {
		ep := &idx.docs[i]
		docID := uint32(i)
		idx.all.Add(docID)

		addTo(idx.idxTier, ep.Category, docID)
		addTo(idx.idxMethod, ep.Method, docID)

		nameTokens := Tokenize(ep.Name)
		for _, tok := range nameTokens {
			addTo(idx.idxNameToken, tok, docID)
		}

		tokens := append(nameTokens, Tokenize(ep.Path)...)
		tokens = append(tokens, Tokenize(ep.Summary)...)
		tokens = append(tokens, Tokenize(ep.ID)...)
		for _, p := range ep.Parameters {
			tokens = append(tokens, Tokenize(p.Name)...)
		}
		for _, tok := range Unique(tokens) {
			addTo(idx.idxToken, tok, docID)
		}
	}
}

func addTo[K comparable](m map[K]*roaring.Bitmap, key K, docID uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(docID)
}

// Len returns the number of indexed endpoints.
func (idx *Indexer) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// AllDocIDs returns a copy of the bitmap of every document.
func (idx *Indexer) AllDocIDs() *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.all.Clone()
}

// GetBitmapForTier returns the documents of a tier, or nil.
func (idx *Indexer) GetBitmapForTier(t client.Tier) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return cloneOrNil(idx.idxTier[t])
}

// GetBitmapForMethod returns the documents using an HTTP method, or nil.
func (idx *Indexer) GetBitmapForMethod(method string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return cloneOrNil(idx.idxMethod[strings.ToUpper(method)])
}

// GetBitmapForToken returns the documents containing token. When no document
// contains it exactly, tokens of at least 3 characters also match as a
// prefix of indexed tokens. Returns nil when nothing matches.
func (idx *Indexer) GetBitmapForToken(token string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if bm, ok := idx.idxToken[token]; ok {
		return bm.Clone()
	}
	if len([]rune(token)) < 3 {
		return nil
	}

	var matches []*roaring.Bitmap
	for tok, bm := range idx.idxToken {
		if strings.HasPrefix(tok, token) {
			matches = append(matches, bm)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return roaring.FastOr(matches...)
}

// NameContains reports whether the name of docID contains token.
func (idx *Indexer) NameContains(docID uint32, token string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bm, ok := idx.idxNameToken[token]
	return ok && bm.Contains(docID)
}

// GetDoc returns a copy of the endpoint stored under docID.
func (idx *Indexer) GetDoc(docID uint32) (*explorer.Endpoint, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if int(docID) >= len(idx.docs) {
		return nil, false
	}
	return idx.docs[docID].Clone(), true
}

func cloneOrNil(bm *roaring.Bitmap) *roaring.Bitmap {
	if bm == nil {
		return nil
	}
	return bm.Clone()
}
