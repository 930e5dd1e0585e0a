// Package script runs user tweak scripts against the settings store.
//
// Scripts are Lua, executed in a sandboxed state with no io, os, debug or
// package libraries and no way to load further code. A script sees one
// global table, tuner, whose functions read and stage settings; staged
// changes still go through the normal validated save path afterwards.
package script

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/fieldtuner/fieldtuner/internal/app"
	"github.com/fieldtuner/fieldtuner/internal/config/store"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 10 * time.Second

// ErrTimeout indicates the script exceeded its run budget.
var ErrTimeout = errors.New("script timed out")

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(log *app.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log.WithComponent("script")
		}
	}
}

// WithTimeout sets the per-run execution budget. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// Runner executes tweak scripts against one settings store. Each run gets
// a fresh Lua state, so scripts cannot leak globals into each other.
type Runner struct {
	store   *store.Store
	log     *app.Logger
	timeout time.Duration
}

// NewRunner creates a runner bound to st.
func NewRunner(st *store.Store, opts ...Option) *Runner {
	r := &Runner{
		store:   st,
		log:     app.NullLogger,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile executes the script at path.
func (r *Runner) RunFile(path string) error {
	return r.run(path, func(L *lua.LState) error { return L.DoFile(path) })
}

// Run executes code as a script. The name appears in error messages.
func (r *Runner) Run(name, code string) error {
	return r.run(name, func(L *lua.LState) error { return L.DoString(code) })
}

func (r *Runner) run(name string, exec func(*lua.LState) error) (err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibraries(L)
	r.installAPI(L)

	if r.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		L.SetContext(ctx)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("script %s: panic: %v", name, rec)
		}
	}()

	r.log.Debug("running script %s", name)
	if err := exec(L); err != nil {
		// gopher-lua surfaces context cancellation as a Lua error, so
		// match the message as well as the wrapped error.
		if errors.Is(err, context.DeadlineExceeded) ||
			strings.Contains(err.Error(), context.DeadlineExceeded.Error()) {
			return fmt.Errorf("script %s: %w", name, ErrTimeout)
		}
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// openSafeLibraries opens base, table, string and math. io, os, debug and
// package stay closed, and the code-loading base functions are removed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installAPI publishes the tuner table.
func (r *Runner) installAPI(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(r.luaGet))
	L.SetField(mod, "has", L.NewFunction(r.luaHas))
	L.SetField(mod, "set", L.NewFunction(r.luaSet))
	L.SetField(mod, "apply", L.NewFunction(r.luaApply))
	L.SetField(mod, "keys", L.NewFunction(r.luaKeys))
	L.SetGlobal("tuner", mod)
}

// luaGet returns the value for a key, or nil when absent.
func (r *Runner) luaGet(L *lua.LState) int {
	key := L.CheckString(1)
	val, ok := r.store.Lookup(key)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(val))
	return 1
}

// luaHas reports whether a key exists.
func (r *Runner) luaHas(L *lua.LState) int {
	key := L.CheckString(1)
	_, ok := r.store.Lookup(key)
	L.Push(lua.LBool(ok))
	return 1
}

// luaSet stages one value. Invalid values raise a Lua error.
func (r *Runner) luaSet(L *lua.LState) int {
	key := L.CheckString(1)
	val, err := valueToString(L.CheckAny(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if err := r.store.Set(key, val); err != nil {
		L.RaiseError("set %s: %v", key, err)
		return 0
	}
	return 0
}

// luaApply stages a table of key/value pairs as one validated batch.
func (r *Runner) luaApply(L *lua.LState) int {
	tbl := L.CheckTable(1)

	values := make(map[string]string)
	var convErr error
	tbl.ForEach(func(k, v lua.LValue) {
		if convErr != nil {
			return
		}
		key, ok := k.(lua.LString)
		if !ok {
			convErr = fmt.Errorf("non-string key %v", k)
			return
		}
		val, err := valueToString(v)
		if err != nil {
			convErr = fmt.Errorf("key %s: %v", key, err)
			return
		}
		values[string(key)] = val
	})
	if convErr != nil {
		L.ArgError(1, convErr.Error())
		return 0
	}

	if err := r.store.Apply(values, "script"); err != nil {
		L.RaiseError("apply: %v", err)
		return 0
	}
	return 0
}

// luaKeys returns the profile keys as an array table, in profile order.
func (r *Runner) luaKeys(L *lua.LState) int {
	keys := r.store.Keys()
	tbl := L.CreateTable(len(keys), 0)
	for i, key := range keys {
		tbl.RawSetInt(i+1, lua.LString(key))
	}
	L.Push(tbl)
	return 1
}

// valueToString converts the Lua values scripts may pass as settings.
// Booleans become the profile's 1/0 spellings; integral numbers drop the
// decimal point.
func valueToString(v lua.LValue) (string, error) {
	switch val := v.(type) {
	case lua.LString:
		return string(val), nil
	case lua.LNumber:
		f := float64(val)
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10), nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case lua.LBool:
		if val {
			return "1", nil
		}
		return "0", nil
	default:
		return "", fmt.Errorf("unsupported value type %s", v.Type())
	}
}
