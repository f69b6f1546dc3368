package game

import "github.com/gonewx/survivor/pkg/utils"

var unitX = utils.Vec2{X: 1}
