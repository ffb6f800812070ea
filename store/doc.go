// Package store persists solved plans and fact sets so repeated solver runs
// against the same domain can reuse earlier results.
//
// Two implementations are provided: MemoryStore, an in-process map suitable
// for tests and single-run tools, and RedisStore, which shares records
// across processes. Records round-trip through the canonical text form of
// terms and actions, so anything loaded can be re-parsed with the logic
// package.
//
//	st, err := store.NewRedisStore(store.RedisOptions{URL: "redis://localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	if rec, err := st.LoadPlan(ctx, problemKey); err == nil {
//	    // reuse rec.Steps instead of searching again
//	}
package store
