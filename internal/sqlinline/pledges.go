package sqlinline

const QInsertPledge = `--sql 65086f66-f5a4-46f8-9a15-3f49b5ef9eb3
insert into pledges(id, fundraiser_id, supporter_id, amount, comment, anonymous, created_at)
values ($1::uuid, $2::uuid, $3::uuid, $4::bigint, $5::text, $6::boolean, $7::timestamptz);
`

const QSelectPledgeByID = `--sql aff83089-f482-4270-95c3-aa099dca8bfe
select id, fundraiser_id, supporter_id, amount, comment, anonymous, created_at
from pledges
where id = $1::uuid;
`

// QListPledgesBase is extended with "and ..." clauses by the repository.
const QListPledgesBase = `--sql f7d2369d-01ff-4fd5-9351-13487e366232
select id, fundraiser_id, supporter_id, amount, comment, anonymous, created_at
from pledges
where true`

const QHasAnonymousPledge = `--sql 4df7393c-3848-46d9-8ba6-b1898cc03239
select exists(
    select 1
    from pledges
    where fundraiser_id = $1::uuid
      and supporter_id = $2::uuid
      and anonymous
);
`
