package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"habitboard/internal/constants"
	"habitboard/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeLoaded := false

	// Check 1: storage reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("FAIL storage reachable\n")
		fmt.Printf("     %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok   storage reachable (%s)\n", ctx.Store.GetConfigPath())
		storeLoaded = true
	}

	// Check 2: data validation (only if storage is reachable)
	if storeLoaded {
		if err := checkData(ctx); err != nil {
			fmt.Printf("FAIL data validation\n")
			fmt.Printf("     %v\n", err)
			hasError = true
		} else {
			fmt.Printf("ok   data validation\n")
		}
	} else {
		fmt.Printf("skip data validation (storage not reachable)\n")
	}

	// Check 3: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("FAIL clock sanity\n")
		fmt.Printf("     %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok   clock sanity\n")
	}

	// Check 4: single process (warning only — stores are not multi-process safe)
	if others, err := otherInstances(); err != nil {
		fmt.Printf("skip concurrent process check (%v)\n", err)
	} else if len(others) > 0 {
		fmt.Printf("warn %d other %s process(es) running: sharing one storage file is not supported\n",
			len(others), constants.AppName)
	} else {
		fmt.Printf("ok   no other %s processes\n", constants.AppName)
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkData(ctx *Context) error {
	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	vr := validation.ValidateBundle(snap)
	if vr.HasConflicts() {
		return fmt.Errorf("%s", vr.FormatReport())
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reads %s; day ids would be nonsense", now.Format(time.RFC3339))
	}
	return nil
}

// otherInstances lists habitboard processes other than this one.
func otherInstances() ([]ps.Process, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	var others []ps.Process
	for _, p := range procs {
		if p.Pid() == os.Getpid() {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			others = append(others, p)
		}
	}
	return others, nil
}
