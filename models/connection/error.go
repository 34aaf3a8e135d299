package connection

import (
	"errors"
	"fmt"
)

// Outcomes of a failed read or write on a session connection
const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
	ConnInvalidMsgType
)

type ConnErr struct {
	code uint8
	desc string
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Error() string {
	return fmt.Sprintf("connection error - code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}

// ConnErrCode returns the code of a ConnErr anywhere in err's chain.
func ConnErrCode(err error) (uint8, bool) {
	var connErr ConnErr
	if errors.As(err, &connErr) {
		return connErr.code, true
	}
	return 0, false
}
