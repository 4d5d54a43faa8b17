// Copyright 2026 The Berth Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package policy holds the platform's fixed security policy as data: the
// deny lists, role tables, default and maximum resource limits, and the
// identity constants stamped onto confined declarations. The validator,
// transformer, and analyzer consume these tables; nothing here inspects a
// declaration itself. Everything is exported so policy can be unit-tested
// and reused on its own.
package policy

import "k8s.io/apimachinery/pkg/util/sets"

const (
	// ManagedLabel marks containers the platform provisioned and may manage.
	ManagedLabel = "berth.host/managed"

	// ProjectLabel records the owning project on every confined service.
	ProjectLabel = "berth.host/project"

	// SharedNetworkName is the pre-existing platform network every confined
	// service joins. It is the only network tenants may declare external.
	SharedNetworkName = "berth-public"

	// ExtensionKey is the document-level block recording that a declaration
	// was tenant-authored and when it was rewritten.
	ExtensionKey = "x-berth"

	// DefaultRestartPolicy applies to services that declare no restart
	// policy of their own.
	DefaultRestartPolicy = "unless-stopped"

	// DefaultTimezone is injected as TZ into services that do not set one.
	DefaultTimezone = "UTC"

	// AppVolumePrefix confines application-role volume sources and build
	// contexts to the project's web root.
	AppVolumePrefix = "./html"

	// DataVolumePrefix confines database-role volume sources to the
	// project's data directory.
	DataVolumePrefix = "./data"
)

// External host ports handed to tenant projects come from this range,
// block by block.
const (
	// ExternalPortRangeStart is the first host port available to projects.
	ExternalPortRangeStart = 10000
	// ExternalPortRangeEnd is the last host port available to projects,
	// inclusive.
	ExternalPortRangeEnd = 19999
)

// Resource-limit policy, in compose notation: decimal CPUs and RAM sizes
// with binary suffixes.
const (
	// DefaultCPULimit is injected when a service declares no limits.
	DefaultCPULimit = "1.0"
	// DefaultMemoryLimit is injected when a service declares no limits.
	DefaultMemoryLimit = "512M"
	// MaxCPULimit is the ceiling for tenant-declared cpus limits.
	MaxCPULimit = "2.0"
	// MaxMemoryLimit is the ceiling for tenant-declared memory limits.
	MaxMemoryLimit = "2G"
)

// BlockedServiceOptions are service keys that grant host-level capabilities
// and are never accepted from tenants.
var BlockedServiceOptions = sets.New(
	"privileged",
	"cap_add",
	"devices",
	"pid",
	"ipc",
	"uts",
	"userns_mode",
	"cgroup_parent",
	"device_cgroup_rules",
	"security_opt",
	"sysctls",
)

// DeniedVolumeSources are host paths tenants may not mount, matched exactly
// or as a path prefix after lexical cleaning.
var DeniedVolumeSources = []string{
	"/var/run/docker.sock",
	"/run/docker.sock",
	"/var/run",
	"/var/lib/docker",
	"/run",
	"/etc",
	"/root",
	"/proc",
	"/sys",
	"/dev",
	"/boot",
}

// DataStoreImages are image-name substrings marking database-role services.
// Their volumes hold server state and are confined under DataVolumePrefix
// instead of the web root.
var DataStoreImages = []string{
	"mysql",
	"mariadb",
	"postgres",
	"mongo",
	"redis",
	"valkey",
	"memcached",
	"elasticsearch",
	"opensearch",
	"clickhouse",
	"cassandra",
	"couchdb",
	"influxdb",
	"rabbitmq",
	"kafka",
	"nats",
}

// AuxiliaryImages extend DataStoreImages for the completeness analyzer:
// admin panels, identity providers, and monitoring tools that support an
// application without being one.
var AuxiliaryImages = []string{
	"adminer",
	"phpmyadmin",
	"pgadmin",
	"mongo-express",
	"redisinsight",
	"keycloak",
	"grafana",
	"prometheus",
	"portainer",
	"minio",
	"mailhog",
	"mailpit",
	"zookeeper",
	"etcd",
	"traefik",
	"watchtower",
}
