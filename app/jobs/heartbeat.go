package jobs

import (
	"context"
	"fmt"
)

const helloGreeting = "Hello, GraphQL!"

// heartbeat records that the CRM is alive and whether the GraphQL endpoint
// answers the hello query.
func (e *Env) heartbeat(ctx context.Context) error {
	log, err := e.open(e.Logs.Heartbeat, false)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("CRM is alive")

	var out struct{ Hello string }
	err = e.Client.Do(ctx, `{ hello }`, nil, &out)
	if err == nil && out.Hello != helloGreeting {
		err = fmt.Errorf("unexpected hello response %q", out.Hello)
	}
	if err != nil {
		log.Error("GraphQL endpoint check failed: " + err.Error())
		return err
	}

	log.Info("GraphQL endpoint is responsive")
	return nil
}
