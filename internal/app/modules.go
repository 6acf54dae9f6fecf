package app

import (
	"github.com/vk/modelprobe/classes/bcpe"
	"github.com/vk/modelprobe/classes/gam"
	"github.com/vk/modelprobe/classes/glm"
	"github.com/vk/modelprobe/classes/ivreg"
	"github.com/vk/modelprobe/classes/lm"
	"github.com/vk/modelprobe/classes/mixed"
	"github.com/vk/modelprobe/classes/zeroinfl"
	"github.com/vk/modelprobe/internal/registry"
)

// coreModules is the definitive list of all class modules that are compiled
// into the modelprobe binary.
var coreModules = []registry.Module{
	&lm.Module{},
	&glm.Module{},
	&zeroinfl.Module{},
	&mixed.Module{},
	&ivreg.Module{},
	&gam.Module{},
	&bcpe.Module{},
}
