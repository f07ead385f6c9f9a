// Package config loads the application configuration and builds its logger.
//
// Configuration is YAML, decoded strictly over DefaultConfig:
//
//	storage:
//	  kind: file          # memory | file
//	  path: cabinet.db
//	validation:
//	  policy: custom      # default | custom | any name under rules
//	  rules:
//	    custom:
//	      firstName: {min: 3, max: 60}
//	      lastName: {min: 3, max: 60}
//	      dateOfBirth: {from: 1918-03-25}
//	      sex: {forbidden: F}
//	      weight: {min: 60, max: 5000}
//	      height: {min: 146, max: 5000}
//	log:
//	  level: info         # debug | info | warn | error
//	  format: json        # json | console
//	  calls: true         # log every store call
//	metrics:
//	  enabled: true
//	  stopwatch: false    # print each store call's duration
//	http:
//	  addr: ":8080"       # empty disables the REST front
//
// Command-line flags override individual settings after loading.
package config
