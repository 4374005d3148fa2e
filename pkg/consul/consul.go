package consul

import (
	"fmt"
	"strconv"

	"rescue-service/config"

	consulapi "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// ConsulConn registers the service with a local consul agent and takes
// care of deregistering it on shutdown. Registration is best-effort:
// when CONSUL_ADDR is unset or the agent is unreachable the service
// keeps running without discovery.
type ConsulConn struct {
	logger    *zap.SugaredLogger
	cfg       *config.Config
	client    *consulapi.Client
	serviceID string
}

func NewConsulConn(logger *zap.SugaredLogger, cfg *config.Config) *ConsulConn {
	return &ConsulConn{
		logger:    logger,
		cfg:       cfg,
		serviceID: fmt.Sprintf("%s-%s-%s", cfg.ServiceName, cfg.ServiceHost, cfg.Port),
	}
}

func (c *ConsulConn) Connect() *consulapi.Client {
	if c.cfg.ConsulAddr == "" {
		c.logger.Info("CONSUL_ADDR not set, skipping service registration")
		return nil
	}

	consulCfg := consulapi.DefaultConfig()
	consulCfg.Address = c.cfg.ConsulAddr

	client, err := consulapi.NewClient(consulCfg)
	if err != nil {
		c.logger.Warnf("Failed to create consul client: %v", err)
		return nil
	}

	port, err := strconv.Atoi(c.cfg.Port)
	if err != nil {
		c.logger.Warnf("Invalid port %q for consul registration: %v", c.cfg.Port, err)
		return nil
	}

	registration := &consulapi.AgentServiceRegistration{
		ID:      c.serviceID,
		Name:    c.cfg.ServiceName,
		Address: c.cfg.ServiceHost,
		Port:    port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", c.cfg.ServiceHost, port),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		c.logger.Warnf("Failed to register with consul: %v", err)
		return nil
	}

	c.client = client
	c.logger.Infof("Registered %s with consul as %s", c.cfg.ServiceName, c.serviceID)
	return client
}

func (c *ConsulConn) Deregister() {
	if c.client == nil {
		return
	}
	if err := c.client.Agent().ServiceDeregister(c.serviceID); err != nil {
		c.logger.Warnf("Failed to deregister %s from consul: %v", c.serviceID, err)
		return
	}
	c.logger.Infof("Deregistered %s from consul", c.serviceID)
}
