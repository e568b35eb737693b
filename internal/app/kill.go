package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"goports/internal/killer"
)

// ErrInvalidPID rejects PIDs that cannot name a process.
var ErrInvalidPID = errors.New("invalid pid")

var (
	osGetpid = os.Getpid
	selfPID  = osGetpid
)

// KillParams identifies the process to terminate.
type KillParams struct {
	PID int
}

// KillResult describes the termination attempt.
type KillResult struct {
	PID     int
	Outcome killer.Outcome
	Message string
}

// Kill terminates the process and waits for it to go away. The returned
// error is nil only when the process was killed.
func (a *App) Kill(ctx context.Context, params KillParams) (KillResult, error) {
	result := KillResult{PID: params.PID}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if params.PID <= 0 || int64(params.PID) > math.MaxUint32 {
		return result, fmt.Errorf("%w: %d", ErrInvalidPID, params.PID)
	}
	if params.PID == selfPID() {
		return result, fmt.Errorf("%w: refusing to kill goports itself (pid %d)", ErrInvalidPID, params.PID)
	}

	outcome, err := a.killer.Kill(uint32(params.PID))
	result.Outcome = outcome
	switch outcome {
	case killer.Killed:
		result.Message = fmt.Sprintf("Killed PID %d", params.PID)
		a.log.Info("process killed", "pid", params.PID)
	case killer.NoSuchProcess:
		result.Message = fmt.Sprintf("PID %d no longer exists", params.PID)
		a.log.Warn("process already gone", "pid", params.PID)
	default:
		result.Message = fmt.Sprintf("Failed to kill PID %d", params.PID)
		a.log.Warn("kill failed", "pid", params.PID, "err", err)
	}
	return result, err
}
