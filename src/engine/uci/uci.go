package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"powerchess/src/engine"
	"powerchess/src/logx"
	"strconv"
	"strings"
	"sync"
	"time"
)

type UCIExecutor struct {
	// init
	path string
	args []string

	// process
	cmd *exec.Cmd
	in  io.WriteCloser
	out io.ReadCloser

	// read stdout
	lines chan string
	best  chan string
	dead  chan struct{}
	wg    sync.WaitGroup

	reqmu  sync.Mutex // at most one outstanding request
	wmu    sync.Mutex // stdin writes
	mu     sync.Mutex
	info   engine.AnalysisInfo
	closed bool
	logx   logx.Logger
}

var _ engine.Engine = (*UCIExecutor)(nil)

// to open a process, need to call Init()
func NewUCIExec(logx logx.Logger, enginePath string, engineArgs ...string) *UCIExecutor {
	return &UCIExecutor{path: enginePath, args: engineArgs, logx: logx}
}

// open process and check
func (e *UCIExecutor) Init() error {
	if e.path == "" {
		return fmt.Errorf("%w: engine path is empty", engine.ErrEngineFailure)
	}

	cmd := exec.Command(e.path, e.args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: connect to stdin: %v", engine.ErrEngineFailure, err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: connect to stdout: %v", engine.ErrEngineFailure, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: open %s: %v", engine.ErrEngineFailure, e.path, err)
	}

	// process
	e.cmd = cmd
	e.in = in
	e.out = out
	e.lines = make(chan string, 256)
	e.best = make(chan string, 1)
	e.dead = make(chan struct{})

	e.wg.Add(1)
	go e.stdoutLoop()

	if !e.checkUCI() {
		e.Close()
		return fmt.Errorf("%w: no uciok from %s", engine.ErrEngineFailure, e.path)
	}
	if !e.checkReady() {
		e.Close()
		return fmt.Errorf("%w: no readyok from %s", engine.ErrEngineFailure, e.path)
	}
	e.logx.Infof("open engine: %s (pid %d)", e.path, cmd.Process.Pid)
	return nil
}

// command executable
func (e *UCIExecutor) Exec(cmd string) error {
	if e.in == nil {
		return errors.New("stdin not available")
	}
	e.wmu.Lock()
	defer e.wmu.Unlock()
	e.logx.Debugf("GUI: %s", cmd)
	_, err := io.WriteString(e.in, cmd+"\n")
	return err
}

func (e *UCIExecutor) Play(ctx context.Context, fen string, prm engine.SearchParams) (string, error) {
	info, err := e.search(ctx, fen, prm)
	if err != nil {
		return "", err
	}
	if info.BestMove == "" || info.BestMove == "(none)" || info.BestMove == "0000" {
		return "", fmt.Errorf("%w: %w", engine.ErrEngineFailure, engine.ErrNoBestMove)
	}
	return info.BestMove, nil
}

func (e *UCIExecutor) Analyse(ctx context.Context, fen string, prm engine.SearchParams) (engine.AnalysisInfo, error) {
	return e.search(ctx, fen, prm)
}

func goCommand(prm engine.SearchParams) string {
	var b strings.Builder
	b.WriteString("go")
	if prm.MaxDepth > 0 {
		b.WriteString(" depth " + strconv.Itoa(prm.MaxDepth))
	}
	if prm.MaxTimeMs > 0 {
		b.WriteString(" movetime " + strconv.FormatInt(prm.MaxTimeMs, 10))
	}
	if prm.MaxDepth <= 0 && prm.MaxTimeMs <= 0 {
		b.WriteString(" infinite")
	}
	return b.String()
}

func (e *UCIExecutor) search(ctx context.Context, fen string, prm engine.SearchParams) (engine.AnalysisInfo, error) {
	e.reqmu.Lock()
	defer e.reqmu.Unlock()
	// abandoned while queued behind another request
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return engine.AnalysisInfo{}, fmt.Errorf("%w: %v", engine.ErrEngineFailure, err)
		}
		return engine.AnalysisInfo{}, err
	}

	e.mu.Lock()
	if e.closed || e.cmd == nil {
		e.mu.Unlock()
		return engine.AnalysisInfo{}, engine.ErrEngineClosed
	}
	e.info = engine.AnalysisInfo{}
	e.mu.Unlock()
	e.drain()

	if err := e.Exec("position fen " + fen); err != nil {
		return engine.AnalysisInfo{}, fmt.Errorf("%w: %v", engine.ErrEngineFailure, err)
	}
	if !e.checkReady() {
		return engine.AnalysisInfo{}, fmt.Errorf("%w: no readyok after position", engine.ErrEngineFailure)
	}
	cmd := goCommand(prm)
	e.logx.Debugf("start analyze: %s", cmd)
	if err := e.Exec(cmd); err != nil {
		return engine.AnalysisInfo{}, fmt.Errorf("%w: %v", engine.ErrEngineFailure, err)
	}

	select {
	case bm := <-e.best:
		e.mu.Lock()
		info := e.info
		e.mu.Unlock()
		info.BestMove = bm
		return info, nil
	case <-ctx.Done():
		// let the late bestmove arrive so it cannot answer the next request
		_ = e.Exec("stop")
		select {
		case <-e.best:
		case <-e.dead:
		case <-time.After(engine.UCIHandshakeTimeout):
		}
		return engine.AnalysisInfo{}, fmt.Errorf("%w: %v", engine.ErrEngineFailure, ctx.Err())
	case <-e.dead:
		return engine.AnalysisInfo{}, fmt.Errorf("%w: process exited", engine.ErrEngineFailure)
	}
}

func (e *UCIExecutor) drain() {
	for {
		select {
		case <-e.lines:
		case <-e.best:
		default:
			return
		}
	}
}

// Terminate process
func (e *UCIExecutor) Close() {
	e.mu.Lock()
	if e.cmd == nil || e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	_ = e.Exec("quit")
	_ = e.in.Close()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// ok
	case <-time.After(2 * time.Second):
		if e.cmd.Process != nil {
			_ = e.cmd.Process.Kill()
		}
		e.wg.Wait()
	}

	_ = e.cmd.Wait()
	e.logx.Info("uci-process terminated")
}

func (e *UCIExecutor) checkUCI() bool {
	if err := e.Exec("uci"); err != nil {
		return false
	}
	if err := e.waitCompare("uciok", engine.UCIHandshakeTimeout); err != nil {
		e.logx.Error(err.Error())
		return false
	}
	return true
}

func (e *UCIExecutor) checkReady() bool {
	if err := e.Exec("isready"); err != nil {
		return false
	}
	if err := e.waitCompare("readyok", engine.UCIHandshakeTimeout); err != nil {
		e.logx.Error(err.Error())
		return false
	}
	return true
}

func (e *UCIExecutor) waitCompare(str string, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case line := <-e.lines:
			if strings.HasPrefix(line, str) {
				return nil
			}
		case <-timer.C:
			return fmt.Errorf("timeout waiting for %s", str)
		case <-e.dead:
			return errors.New("engine process exited")
		}
	}
}

func (e *UCIExecutor) stdoutLoop() {
	defer e.wg.Done()
	defer close(e.dead)
	scr := bufio.NewScanner(e.out)
	for scr.Scan() {
		line := strings.TrimSpace(scr.Text()) // drop \n\t
		if line == "" {
			continue
		}
		e.logx.Debugf("ENGINE: %s", line)

		switch {
		case strings.HasPrefix(line, "info "):
			e.saveInfo(line)
		case strings.HasPrefix(line, "bestmove"):
			e.saveBest(line)
		default:
			select {
			case e.lines <- line:
			default:
				e.logx.Debugf("drop engine line (buffer full)")
			}
		}
	}
}

// ParseInfo decodes one "info ..." line. ok is false for lines that carry
// no search data (e.g. "info string").
func ParseInfo(line string) (info engine.AnalysisInfo, ok bool) {
	fld := strings.Fields(line)
	n := len(fld)
	if n < 2 || fld[0] != "info" || fld[1] == "string" {
		return info, false
	}
	for i := 1; i < n; i++ {
		switch fld[i] {
		case "depth":
			if i+1 < n {
				info.Depth, _ = strconv.Atoi(fld[i+1])
				ok = true
				i++
			}
		case "nodes":
			if i+1 < n {
				info.Nodes, _ = strconv.ParseInt(fld[i+1], 10, 64)
				i++
			}
		case "score":
			if i+2 < n {
				typ, val := fld[i+1], fld[i+2]
				if v, err := strconv.Atoi(val); err == nil {
					switch typ {
					case "cp":
						info.ScoreCP, info.MateIn, info.HasScore = v, 0, true
					case "mate":
						info.MateIn, info.HasScore = v, true
						if v == 0 {
							// side to move is mated
							info.MateIn = -1
						}
					}
				}
				ok = true
				i += 2
			}
		case "pv":
			if i+1 < n {
				info.PV = append([]string(nil), fld[i+1:]...)
				info.BestMove = info.PV[0]
				ok = true
			}
			i = n // pv is always last
		default:
			// skip like "seldepth", "currmove" etc
		}
	}
	return info, ok
}

func (e *UCIExecutor) saveInfo(line string) {
	pre, ok := ParseInfo(line)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if pre.Depth > 0 {
		e.info.Depth = pre.Depth
	}
	if pre.Nodes > 0 {
		e.info.Nodes = pre.Nodes
	}
	if pre.HasScore {
		e.info.HasScore, e.info.ScoreCP, e.info.MateIn = true, pre.ScoreCP, pre.MateIn
	}
	if len(pre.PV) > 0 {
		e.info.PV = pre.PV
	}
}

func (e *UCIExecutor) saveBest(line string) {
	f := strings.Fields(line)
	bm := ""
	if len(f) >= 2 {
		bm = f[1]
	}
	select {
	case e.best <- bm:
	default:
		e.logx.Warnf("unexpected bestmove: %s", line)
	}
}
